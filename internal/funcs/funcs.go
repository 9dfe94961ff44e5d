package funcs

import (
	"text/template"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var TemplateFuncs = template.FuncMap{
	"formatAmount": FormatAmount,
	"formatDate":   FormatDate,
}

// FormatAmount renders an FCFA amount with French digit grouping, the
// way the storefront displayed prices ("1 015 000 FCFA").
func FormatAmount(amount int64) string {
	p := message.NewPrinter(language.French)
	return p.Sprintf("%d FCFA", amount)
}

func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}
