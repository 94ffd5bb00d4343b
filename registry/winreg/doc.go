// Package winreg implements a registry.Hive on the Windows
// registry. It is only built on Windows.
package winreg
