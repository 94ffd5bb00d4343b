// Package profile provides an interface for implementing
// settings stores that can be addressed purely by section
// and entry names regardless of the format used to persist them.
//
// A profile contains zero or more sections and sections contain
// zero or more entries. Each entry has a name and a value. Values
// are always persisted as strings and coerced back into the type
// requested by the caller.
//
//  - Profile (an ini file, an xml file, a registry key...)
//    - Section A
//      - Entry 1: abc
//      - Entry 2: 8080
//    - Section B
//      - Entry 1: true
//
// Drivers live in their own packages (ini, xml, config, registry) and
// all of them honor the contract described by Profile. Drivers are
// exposed through Plugin so that consumers and tests can pick one by name.
//
// Every mutation goes through two change notifications. Changing handlers
// run first and may cancel the operation. A cancelled operation returns nil
// and has no effect. Changed handlers run afterwards, once, in registration
// order.
//
// Missing sections and entries are never errors. Lookups report them through
// a boolean ok result instead. Errors are reserved for invalid names
// (ErrInvalidArgument), misuse such as writing to a read-only profile
// (ErrIllegalState), storage failures (ErrStorage) and malformed
// documents (ErrParse).
package profile
