package email

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"log"
	"text/template"

	"fleet-management/internal/models"
)

// TemplateManager holds the parsed email templates.
type TemplateManager struct {
	StatementHTML *htmltemplate.Template
	StatementText *template.Template
}

var funcs = map[string]interface{}{
	"money": func(v float64) string {
		if v == 0 {
			return ""
		}
		return fmt.Sprintf("%.2f", v)
	},
	"balance": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}

// NewTemplateManager parses all email templates at startup.
func NewTemplateManager() (*TemplateManager, error) {
	statementHTML, err := htmltemplate.New("statement").Funcs(funcs).Parse(statementHTMLTemplate)
	if err != nil {
		return nil, err
	}
	statementText, err := template.New("statementText").Funcs(funcs).Parse(statementTextTemplate)
	if err != nil {
		return nil, err
	}

	log.Println("Email templates parsed successfully.")
	return &TemplateManager{StatementHTML: statementHTML, StatementText: statementText}, nil
}

// StatementData is the input to the driver ledger statement.
type StatementData struct {
	CompanyName string
	Ledger      *models.DriverLedger
}

// Subject returns the subject line for a statement.
func (d StatementData) Subject() string {
	name := ""
	if d.Ledger.Driver != nil {
		name = d.Ledger.Driver.Name
	}
	return fmt.Sprintf("Driver statement: %s (%s to %s)", name, d.Ledger.FromDate, d.Ledger.ToDate)
}

// GenerateStatement renders the plain text and HTML bodies of a statement.
func (tm *TemplateManager) GenerateStatement(data StatementData) (string, string, error) {
	var text, html bytes.Buffer
	if err := tm.StatementText.Execute(&text, data); err != nil {
		return "", "", err
	}
	if err := tm.StatementHTML.Execute(&html, data); err != nil {
		return "", "", err
	}
	return text.String(), html.String(), nil
}

// --- Template Definitions ---

const statementTextTemplate = `{{with .CompanyName}}{{.}}
{{end}}Driver statement for {{with .Ledger.Driver}}{{.Name}}{{end}}
Period: {{.Ledger.FromDate}} to {{.Ledger.ToDate}}

Opening balance: {{balance .Ledger.Summary.OpeningBalance}}
Total credit:    {{balance .Ledger.Summary.TotalCredit}}
Total debit:     {{balance .Ledger.Summary.TotalDebit}}
Closing balance: {{balance .Ledger.Summary.Balance}}
{{range .Ledger.Transactions}}
{{.TransDate}}  {{.BillNo}}  {{.Description}}  Cr {{money .CrAmount}}  Dr {{money .DrAmount}}  Bal {{balance .RunningBalance}}{{end}}
`

const statementHTMLTemplate = `
<!DOCTYPE html>
<html>
<head>
	<title>Driver Statement</title>
</head>
<body style="font-family: Arial, sans-serif;">
	{{with .CompanyName}}<h2>{{.}}</h2>{{end}}
	<h3>Driver statement{{with .Ledger.Driver}}: {{.Name}}{{end}}</h3>
	<p>Period: {{.Ledger.FromDate}} to {{.Ledger.ToDate}}</p>
	<table cellpadding="4" cellspacing="0" border="1" style="border-collapse: collapse;">
		<tr style="background: #E6F3FF;">
			<th>Date</th><th>Bill No</th><th>Description</th><th>Credit</th><th>Debit</th><th>Balance</th>
		</tr>
		<tr>
			<td colspan="5"><b>Opening balance</b></td><td align="right">{{balance .Ledger.Summary.OpeningBalance}}</td>
		</tr>
		{{range .Ledger.Transactions}}
		<tr>
			<td>{{.TransDate}}</td><td>{{.BillNo}}</td><td>{{.Description}}</td>
			<td align="right">{{money .CrAmount}}</td><td align="right">{{money .DrAmount}}</td>
			<td align="right">{{balance .RunningBalance}}</td>
		</tr>
		{{end}}
		<tr>
			<td colspan="3"><b>Total</b></td>
			<td align="right"><b>{{balance .Ledger.Summary.TotalCredit}}</b></td>
			<td align="right"><b>{{balance .Ledger.Summary.TotalDebit}}</b></td>
			<td align="right"><b>{{balance .Ledger.Summary.Balance}}</b></td>
		</tr>
	</table>
</body>
</html>
`
