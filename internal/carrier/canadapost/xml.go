package canadapost

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

func newDocument(root, namespace string) (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	el := doc.CreateElement(root)
	el.CreateAttr("xmlns", namespace)
	return doc, el
}

func writeDocument(doc *etree.Document) ([]byte, error) {
	doc.Indent(2)
	return doc.WriteToBytes()
}

// addText appends <tag>text</tag> to parent.
func addText(parent *etree.Element, tag, text string) *etree.Element {
	el := parent.CreateElement(tag)
	el.SetText(text)
	return el
}

// addOptionalText appends <tag>text</tag> only when text is not blank.
func addOptionalText(parent *etree.Element, tag, text string) {
	if strings.TrimSpace(text) != "" {
		addText(parent, tag, text)
	}
}

func addBool(parent *etree.Element, tag string, v bool) {
	addText(parent, tag, strconv.FormatBool(v))
}

func readDocument(body []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, err
	}
	return doc, nil
}

// childText returns the trimmed text of the first child named tag, or "".
func childText(el *etree.Element, tag string) string {
	if el == nil {
		return ""
	}
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return strings.TrimSpace(child.Text())
}

// rawChildText is childText without trimming.
func rawChildText(el *etree.Element, tag string) string {
	if el == nil {
		return ""
	}
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return child.Text()
}
