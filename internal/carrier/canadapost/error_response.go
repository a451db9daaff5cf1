package canadapost

import (
	"strings"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
)

// ParseError reads a messages document into a failure result. Descriptions
// are joined with ", " in document order.
func ParseError(body []byte) (*domain.ErrorResult, error) {
	const op = "parse error"

	doc, err := readDocument(body)
	if err != nil {
		return nil, domain.Malformed(op, err)
	}
	root := doc.SelectElement("messages")
	if root == nil {
		return nil, domain.Malformed(op, domain.ErrNoMessages)
	}

	var (
		descriptions []string
		codes        []string
	)
	for _, m := range root.SelectElements("message") {
		if d := childText(m, "description"); d != "" {
			descriptions = append(descriptions, d)
		}
		if c := childText(m, "code"); c != "" {
			codes = append(codes, c)
		}
	}

	return &domain.ErrorResult{
		Success: false,
		Message: strings.Join(descriptions, ", "),
		Codes:   codes,
	}, nil
}
