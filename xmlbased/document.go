package xmlbased

import (
	"bytes"
	"fmt"
	"io"

	"github.com/beevik/etree"
	"github.com/jrife/profile"
	"golang.org/x/text/encoding/htmlindex"
)

const indent = 2

// NewDocument returns an empty document that
// decodes any encoding known to htmlindex
func NewDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader

	return doc
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	encoding, err := htmlindex.Get(label)

	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", label, err)
	}

	return encoding.NewDecoder().Reader(input), nil
}

func decode(data []byte) (*etree.Document, error) {
	doc := NewDocument()

	if len(bytes.TrimSpace(data)) == 0 {
		return doc, nil
	}

	if err := doc.ReadFromBytes(data); err != nil {
		return nil, profile.ParseError("could not parse document", err)
	}

	if doc.Root() == nil {
		return nil, profile.ParseError("could not parse document", fmt.Errorf("no root element"))
	}

	return doc, nil
}

// encode serializes doc with an XML declaration naming the encoding,
// transcoding the output if the encoding is not UTF-8
func encode(doc *etree.Document, encodingName string) ([]byte, error) {
	for _, token := range doc.Child {
		if procInst, ok := token.(*etree.ProcInst); ok && procInst.Target == "xml" {
			doc.RemoveChild(procInst)

			break
		}
	}

	doc.Indent(indent)

	body, err := doc.WriteToBytes()

	if err != nil {
		return nil, profile.StorageError("could not serialize document", err)
	}

	var buf bytes.Buffer

	fmt.Fprintf(&buf, "<?xml version=\"1.0\" encoding=\"%s\"?>\n", encodingName)
	buf.Write(body)

	encoding, err := htmlindex.Get(encodingName)

	if err != nil {
		return nil, profile.InvalidArgument("unknown encoding %q", encodingName)
	}

	if name, _ := htmlindex.Name(encoding); name == "utf-8" {
		return buf.Bytes(), nil
	}

	data, err := encoding.NewEncoder().Bytes(buf.Bytes())

	if err != nil {
		return nil, profile.StorageError(fmt.Sprintf("could not encode document as %s", encodingName), err)
	}

	return data, nil
}
