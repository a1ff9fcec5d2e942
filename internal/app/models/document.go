package models

import (
	"path"
	"strings"
)

// DocumentKind identifies one of the fixed document slots of an application
type DocumentKind string

const (
	DocumentIDCopy         DocumentKind = "id_document"
	DocumentMatric         DocumentKind = "matric_certificate"
	DocumentProofOfPayment DocumentKind = "proof_of_payment"
	DocumentAdditional1    DocumentKind = "additional_doc_1"
	DocumentAdditional2    DocumentKind = "additional_doc_2"
)

// DocumentRule holds the storage folder and accepted extensions of a kind
type DocumentRule struct {
	Folder     string
	Subfolder  string
	Label      string
	StatusKey  string
	Extensions []string
}

var (
	baseDocumentExtensions       = []string{"pdf", "jpg", "jpeg", "png"}
	additionalDocumentExtensions = []string{"pdf", "jpg", "jpeg", "png", "doc", "docx"}
)

var documentRules = map[DocumentKind]DocumentRule{
	DocumentIDCopy: {
		Folder: "id", Subfolder: "id_documents", Label: "ID Document", StatusKey: "id",
		Extensions: baseDocumentExtensions,
	},
	DocumentMatric: {
		Folder: "matric", Subfolder: "matric_certificates", Label: "Matric Certificate", StatusKey: "matric",
		Extensions: baseDocumentExtensions,
	},
	DocumentProofOfPayment: {
		Folder: "pop", Subfolder: "proof_of_payments", Label: "Proof of Payment", StatusKey: "pop",
		Extensions: baseDocumentExtensions,
	},
	DocumentAdditional1: {
		Folder: "additional", Subfolder: "additional_docs", Label: "Additional Document 1", StatusKey: "additional_1",
		Extensions: additionalDocumentExtensions,
	},
	DocumentAdditional2: {
		Folder: "additional", Subfolder: "additional_docs", Label: "Additional Document 2", StatusKey: "additional_2",
		Extensions: additionalDocumentExtensions,
	},
}

// DocumentKinds returns every kind in display order
func DocumentKinds() []DocumentKind {
	return []DocumentKind{
		DocumentIDCopy,
		DocumentMatric,
		DocumentProofOfPayment,
		DocumentAdditional1,
		DocumentAdditional2,
	}
}

// Rule returns the storage rule of k. ok is false for unknown kinds.
func (k DocumentKind) Rule() (rule DocumentRule, ok bool) {
	rule, ok = documentRules[k]
	return rule, ok
}

// Valid reports whether k is one of the fixed slots
func (k DocumentKind) Valid() bool {
	_, ok := documentRules[k]
	return ok
}

// Allows reports whether filename has an extension accepted for k
func (k DocumentKind) Allows(filename string) bool {
	rule, ok := documentRules[k]
	if !ok {
		return false
	}
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	if ext == "" {
		return false
	}
	for _, allowed := range rule.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// DocumentSet maps each uploaded slot to its storage-relative path
type DocumentSet map[DocumentKind]string

// Has reports whether a document is stored for k
func (d DocumentSet) Has(k DocumentKind) bool {
	return d[k] != ""
}

// Status returns the presence map exposed as documents_status
func (d DocumentSet) Status() map[string]bool {
	out := make(map[string]bool, len(documentRules))
	for _, k := range DocumentKinds() {
		out[documentRules[k].StatusKey] = d.Has(k)
	}
	return out
}
