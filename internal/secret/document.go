package secret

import (
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// DocumentVersion is written into every document this package produces.
const DocumentVersion = 1

var (
	errMissingSecret  = errors.New("document has no secret attribute")
	errZeroSecret     = errors.New("document secret is zero")
	errChecksumFailed = errors.New("document checksum does not match secret")
)

// Document is the persisted form of a secret.
//
//	version      = 1
//	secret       = -4142356512389771223
//	generated_at = "2026-10-18T12:00:00Z"
//	checksum     = "9c1f0e7d2a6b5c43"
//
// Only secret is required. A checksum, when present, must match the secret.
type Document struct {
	Secret      Secret
	Version     int
	GeneratedAt time.Time
}

type documentFile struct {
	Version     *int     `hcl:"version,optional"`
	Secret      *int64   `hcl:"secret,optional"`
	GeneratedAt *string  `hcl:"generated_at,optional"`
	Checksum    *string  `hcl:"checksum,optional"`
	Remain      hcl.Body `hcl:",remain"`
}

// EncodeDocument renders doc as HCL.
func EncodeDocument(doc Document) []byte {
	version := doc.Version
	if version == 0 {
		version = DocumentVersion
	}

	f := hclwrite.NewEmptyFile()
	body := f.Body()
	body.SetAttributeValue("version", cty.NumberIntVal(int64(version)))
	body.SetAttributeValue("secret", cty.NumberIntVal(int64(doc.Secret)))
	if !doc.GeneratedAt.IsZero() {
		body.SetAttributeValue("generated_at", cty.StringVal(doc.GeneratedAt.UTC().Format(time.RFC3339)))
	}
	body.SetAttributeValue("checksum", cty.StringVal(Fingerprint(doc.Secret)))
	return hclwrite.Format(f.Bytes())
}

// DecodeDocument parses an HCL secret document. filename is only used in
// diagnostics. An unparseable generated_at is reported as ErrMetadata together
// with the decoded document, leaving GeneratedAt zero.
func DecodeDocument(data []byte, filename string) (Document, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return Document{}, fmt.Errorf("parse secret document: %s", diags.Error())
	}

	var raw documentFile
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return Document{}, fmt.Errorf("decode secret document: %s", diags.Error())
	}

	if raw.Secret == nil {
		return Document{}, errMissingSecret
	}
	doc := Document{Secret: Secret(*raw.Secret)}
	if !doc.Secret.Valid() {
		return Document{}, errZeroSecret
	}

	if raw.Version != nil {
		doc.Version = *raw.Version
	}
	if raw.Checksum != nil && *raw.Checksum != Fingerprint(doc.Secret) {
		return Document{}, errChecksumFailed
	}

	if raw.GeneratedAt != nil {
		ts, err := time.Parse(time.RFC3339, *raw.GeneratedAt)
		if err != nil {
			return doc, fmt.Errorf("%w: parse generated_at: %w", ErrMetadata, err)
		}
		doc.GeneratedAt = ts
	}

	return doc, nil
}
