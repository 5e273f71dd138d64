package notify

import (
	"fmt"
	"html"
	"time"
)

type ConfirmationData struct {
	ShopName     string
	Location     string
	CustomerName string
	Email        string
	Date         time.Time
	TimeSlot     string
}

func BuildConfirmationEmail(data ConfirmationData) Message {
	shop := data.ShopName
	if shop == "" {
		shop = "Chop Clock"
	}
	name := data.CustomerName
	if name == "" {
		name = "there"
	}

	day := data.Date.Format("Monday, January 2, 2006")

	text := fmt.Sprintf(`Hello %s,

Thank you for booking with %s! Your appointment has been successfully confirmed.

Date: %s
Time: %s
`, name, shop, day, data.TimeSlot)
	if data.Location != "" {
		text += fmt.Sprintf("Location: %s\n", data.Location)
	}
	text += fmt.Sprintf(`
If you have any questions or need to reschedule, feel free to contact us.

Best regards,
%s Team`, shop)

	location := ""
	if data.Location != "" {
		location = fmt.Sprintf(`<p><strong>Location:</strong> %s</p>`, html.EscapeString(data.Location))
	}

	body := fmt.Sprintf(`<div style="font-family: Arial, sans-serif; padding: 20px; background-color: #f0f4ff; color: #1e3a8a;">
  <h2>Hello %s,</h2>
  <p>Thank you for booking with <strong>%s</strong>! Your appointment has been successfully confirmed.</p>
  <div style="margin: 20px 0; padding: 15px; background-color: #ffffff; border-left: 4px solid #3b82f6;">
    <p><strong>Date:</strong> %s</p>
    <p><strong>Time:</strong> %s</p>
    %s
  </div>
  <p>If you have any questions or need to reschedule, feel free to contact us.</p>
  <p>Best regards,<br/><strong>%s Team</strong></p>
</div>`,
		html.EscapeString(name), html.EscapeString(shop), day,
		html.EscapeString(data.TimeSlot), location, html.EscapeString(shop))

	return Message{
		To:       []string{data.Email},
		Subject:  fmt.Sprintf("Your Appointment Confirmation | %s", shop),
		TextBody: text,
		HTMLBody: body,
	}
}
