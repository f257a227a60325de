package dian

import (
	"github.com/beevik/etree"

	"github.com/rezonia/dian-processor/internal/model"
)

// ParseAcknowledgement extracts the structured fields from an authority
// acknowledgement. Absent fields stay empty rather than failing; malformed
// XML yields a failure result that preserves the raw text unmodified.
//
// Lookups match on local element name, so prefixed (cbc:ResponseCode) and
// unprefixed acknowledgements both parse.
func ParseAcknowledgement(rawXML string) *model.Acknowledgement {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(rawXML); err != nil || doc.Root() == nil {
		parseErr := &model.AckParseError{Message: "malformed acknowledgement document", Cause: err}
		return &model.Acknowledgement{
			Success:         false,
			ResponseMessage: parseErr.Error(),
			RawXML:          rawXML,
		}
	}

	root := doc.Root()
	return &model.Acknowledgement{
		Success:         true,
		ResponseCode:    findTextByLocalName(root, "ResponseCode"),
		ResponseMessage: findTextByLocalName(root, "ResponseDescription"),
		DocumentUUID:    findTextByLocalName(root, "UUID"),
		DocumentNumber:  findTextByLocalName(root, "ID"),
		RawXML:          rawXML,
	}
}

// findTextByLocalName walks the tree and returns the text of the first
// element whose local name matches, regardless of namespace prefix.
func findTextByLocalName(el *etree.Element, name string) string {
	if el.Tag == name {
		return el.Text()
	}
	for _, child := range el.ChildElements() {
		if text := findTextByLocalName(child, name); text != "" {
			return text
		}
	}
	return ""
}
