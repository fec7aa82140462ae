package toast

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/five82/opsboard/internal/nav"
)

// Query parameter names.
const (
	ParamKind    = "toast"
	ParamSubject = "id"
)

// Kind names the mutation that triggered the redirect.
type Kind string

const (
	Updated  Kind = "updated"
	Resolved Kind = "resolved"
)

// Template renders a banner. Description may contain one %s for the subject.
type Template struct {
	Title       string
	Description string
}

// Templates is the set of kinds a destination understands.
type Templates map[Kind]Template

// Variant is the banner colour.
type Variant int

const (
	Success Variant = iota
	Error
)

func (v Variant) String() string {
	if v == Error {
		return "error"
	}
	return "success"
}

// Banner is the visible banner state of a screen.
type Banner struct {
	Open        bool
	Variant     Variant
	Title       string
	Description string
	Details     []string
}

// Dismiss closes the banner.
func (b *Banner) Dismiss() {
	*b = Banner{}
}

// SuccessBanner returns an open success banner.
func SuccessBanner(title, description string) Banner {
	return Banner{Open: true, Variant: Success, Title: title, Description: description}
}

// ErrorBanner returns an open error banner.
func ErrorBanner(title, description string, details ...string) Banner {
	return Banner{Open: true, Variant: Error, Title: title, Description: description, Details: details}
}

// Encode returns the query parameters for a redirect carrying kind and subject.
func Encode(kind Kind, subject string) url.Values {
	return url.Values{ParamKind: {string(kind)}, ParamSubject: {subject}}
}

// Decode builds the banner for params. It reports false when either
// parameter is missing or the kind has no template.
func Decode(params url.Values, templates Templates) (Banner, bool) {
	kind := Kind(strings.TrimSpace(params.Get(ParamKind)))
	subject := strings.TrimSpace(params.Get(ParamSubject))
	if kind == "" || subject == "" {
		return Banner{}, false
	}
	tpl, ok := templates[kind]
	if !ok {
		return Banner{}, false
	}
	desc := tpl.Description
	if strings.Contains(desc, "%s") {
		desc = fmt.Sprintf(desc, subject)
	}
	return SuccessBanner(tpl.Title, desc), true
}

// Strip returns a copy of params without the toast parameters.
func Strip(params url.Values) url.Values {
	out := make(url.Values, len(params))
	for k, v := range params {
		if k == ParamKind || k == ParamSubject {
			continue
		}
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Consume decodes the toast carried by route. When one is recognized it
// returns the banner and the stripped route the caller must install with a
// history replace.
func Consume(route nav.Route, templates Templates) (Banner, nav.Route, bool) {
	b, ok := Decode(route.Query, templates)
	if !ok {
		return Banner{}, route, false
	}
	return b, route.WithQuery(Strip(route.Query)), true
}

// Redirect returns route carrying a toast for kind and subject.
func Redirect(route nav.Route, kind Kind, subject string) nav.Route {
	q := Strip(route.Query)
	for k, v := range Encode(kind, subject) {
		q[k] = v
	}
	return route.WithQuery(q)
}
