package usecase

import (
	"text/template"
)

type outreachData struct {
	Lead          outreachLead
	HasAudit      bool
	Overall       int
	Design        int
	SEO           int
	Summary       string
	Issues        []string
	SenderName    string
	SenderCompany string
}

type outreachLead struct {
	Name string
	City string
	Site string
}

const maxOutreachIssues = 3

var outreachSubject = template.Must(template.New("subject").Parse(
	`{{if .HasAudit}}{{.Lead.Name}}: your website scored {{.Overall}}/100{{else}}A quick idea for {{.Lead.Name}}'s website{{end}}`,
))

var outreachBody = template.Must(template.New("body").Parse(`Hi {{.Lead.Name}} team,

{{if .HasAudit -}}
I took a look at **{{.Lead.Site}}** and ran it through our website review. It scored **{{.Overall}}/100** (design {{.Design}}, SEO {{.SEO}}).

{{.Summary}}
{{if .Issues}}
A few things that stood out:
{{range .Issues}}
- {{.}}
{{- end}}
{{end}}
{{- else -}}
I came across **{{.Lead.Site}}**{{if .Lead.City}} while looking at businesses in {{.Lead.City}}{{end}} and had a few ideas for getting more customers from it.
{{end}}
Would you be open to a short call this week to go over how we could fix this?

Best,
{{.SenderName}}{{if .SenderCompany}}
{{.SenderCompany}}{{end}}
`))
