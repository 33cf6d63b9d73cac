package mail

import (
	"bytes"
	"html/template"
	"log"
	"time"
)

var (
	resetCodeTmpl = template.Must(template.New("reset_code").Parse(`
<h2>Password reset</h2>
<p>Your confirmation code:</p>
<p style="font-size:24px;font-weight:bold;letter-spacing:4px">{{.Code}}</p>
<p>The code is valid for two minutes. If you did not request a reset, ignore this message.</p>`))

	resetLinkTmpl = template.Must(template.New("reset_link").Parse(`
<h2>Password reset</h2>
<p>Follow the link to set a new password:</p>
<p><a href="{{.Link}}">{{.Link}}</a></p>
<p>The link is valid for five minutes. If you did not request a reset, ignore this message.</p>`))

	purchaseTmpl = template.Must(template.New("purchase").Parse(`
<h2>Purchase confirmed</h2>
<p>You now have permanent access to <strong>{{.Title}}</strong>.</p>
<p>Amount: {{printf "%.2f" .Amount}}<br>Transaction: {{.TransactionID}}</p>`))

	subscriptionTmpl = template.Must(template.New("subscription").Parse(`
<h2>Subscription activated</h2>
<p>Plan <strong>{{.PlanName}}</strong> is active
{{- if .ExpiresAt }} until {{.ExpiresAt.Format "02.01.2006"}}{{ end }}.</p>
<p>Amount: {{printf "%.2f" .Amount}}<br>Transaction: {{.TransactionID}}</p>`))
)

func render(tmpl *template.Template, data any) string {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		log.Printf("mail template %s failed: %v", tmpl.Name(), err)
		return ""
	}
	return buf.String()
}

// SendResetCode delivers the 6-digit confirmation code.
func SendResetCode(to, code string) error {
	body := render(resetCodeTmpl, struct{ Code string }{code})
	return SendMail(to, "Password reset code", body)
}

// SendResetLink delivers the one-time reset link.
func SendResetLink(to, link string) error {
	body := render(resetLinkTmpl, struct{ Link string }{link})
	return SendMail(to, "Password reset", body)
}

type PurchaseReceipt struct {
	Title         string
	Amount        float64
	TransactionID string
}

func SendPurchaseReceipt(to string, r PurchaseReceipt) error {
	return SendMail(to, "Purchase confirmed", render(purchaseTmpl, r))
}

type SubscriptionReceipt struct {
	PlanName      string
	Amount        float64
	TransactionID string
	ExpiresAt     *time.Time
}

func SendSubscriptionReceipt(to string, r SubscriptionReceipt) error {
	return SendMail(to, "Subscription activated", render(subscriptionTmpl, r))
}
