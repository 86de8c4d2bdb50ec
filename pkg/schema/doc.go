// Package schema loads declarative form documents written in YAML or JSON.
//
// A file either holds one form at the top level or several under "forms",
// keyed by id. Field validation is declared separately under "rules", keyed
// by field name, because validate functions cannot be serialised:
//
//	forms:
//	  signup:
//	    label: Sign up
//	    fields:
//	      - {name: email, type: email, label: Email, required: true}
//	    actions:
//	      - {title: Create account, type: submit}
//	    rules:
//	      email: {required: true, email: true}
package schema
