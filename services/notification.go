package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"tripsplit-backend/config"
	"tripsplit-backend/models"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"google.golang.org/api/option"
)

type NotificationService struct {
	fcm     *messaging.Client
	fcmOnce sync.Once
}

var notifService *NotificationService

func GetNotificationService() *NotificationService {
	if notifService == nil {
		notifService = &NotificationService{}
	}
	return notifService
}

// ============================================================
// PUSH NOTIFICATIONS via Firebase Cloud Messaging
// ============================================================

func (ns *NotificationService) messagingClient() *messaging.Client {
	ns.fcmOnce.Do(func() {
		app, err := firebase.NewApp(context.Background(), nil,
			option.WithCredentialsFile(config.AppConfig.FirebaseCredPath))
		if err != nil {
			log.Printf("⚠️  Firebase not configured, push disabled: %v", err)
			return
		}
		client, err := app.Messaging(context.Background())
		if err != nil {
			log.Printf("⚠️  Firebase messaging unavailable: %v", err)
			return
		}
		ns.fcm = client
	})
	return ns.fcm
}

func (ns *NotificationService) sendPush(fcmToken string, title string, body string, data map[string]string) {
	if fcmToken == "" {
		return
	}

	client := ns.messagingClient()
	if client == nil {
		return
	}

	msg := &messaging.Message{
		Token: fcmToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := client.Send(context.Background(), msg); err != nil {
		log.Printf("❌ FCM send error: %v", err)
		return
	}
	log.Printf("✅ Push notification sent: %s", title)
}

// ============================================================
// EMAIL NOTIFICATIONS via SendGrid
// ============================================================

func (ns *NotificationService) sendEmail(toEmail string, toName string, subject string, htmlBody string) {
	if config.AppConfig.SendGridAPIKey == "" {
		log.Printf("⚠️  SendGrid API key not set, skipping email to %s", toEmail)
		return
	}

	from := mail.NewEmail(config.AppConfig.AppName, config.AppConfig.SendGridFrom)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("❌ Email send error: %v", err)
		return
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		log.Printf("✅ Email sent to %s", toEmail)
	} else {
		log.Printf("⚠️  SendGrid returned status: %d", resp.StatusCode)
	}
}

// ============================================================
// NOTIFICATION EVENTS
// ============================================================

// NotifyExpenseAdded tells every other trip member about a new expense.
func (ns *NotificationService) NotifyExpenseAdded(expense models.Expense, members []models.User, payer models.User, trip models.Trip) {
	for _, user := range members {
		if user.ID == expense.PaidBy {
			continue // Don't notify the payer
		}

		title := fmt.Sprintf("%s added an expense", payer.Name)
		body := fmt.Sprintf("\"%s\" (%s %.2f) in %s", expense.Description, expense.Currency, expense.Amount, trip.Name)

		ns.sendPush(user.FCMToken, title, body, map[string]string{
			"type":       "expense_added",
			"expense_id": expense.ID.String(),
			"trip_id":    expense.TripID.String(),
		})

		htmlBody := buildExpenseEmailHTML(payer.Name, user.Name, expense.Description, expense.Amount, expense.Currency, trip.Name)
		ns.sendEmail(user.Email, user.Name, fmt.Sprintf("%s added \"%s\" in %s", payer.Name, expense.Description, trip.Name), htmlBody)
	}
}

// NotifySettlementPaid tells the debtor their payment was confirmed.
func (ns *NotificationService) NotifySettlementPaid(record models.PaidSettlement, creditor models.User, debtor models.User, trip models.Trip) {
	title := fmt.Sprintf("%s confirmed your payment", creditor.Name)
	body := fmt.Sprintf("%s %.2f in %s is marked as paid", record.Currency, record.Amount, trip.Name)

	ns.sendPush(debtor.FCMToken, title, body, map[string]string{
		"type":    "settlement_paid",
		"trip_id": record.TripID.String(),
	})

	htmlBody := buildSettlementEmailHTML(creditor.Name, debtor.Name, record.Amount, record.Currency, trip.Name)
	ns.sendEmail(debtor.Email, debtor.Name, fmt.Sprintf("%s marked your payment as received", creditor.Name), htmlBody)
}

// NotifyPaymentRequested tells the debtor someone recorded a debt against them.
func (ns *NotificationService) NotifyPaymentRequested(payment models.DirectPayment, creditor models.User, debtor models.User) {
	title := fmt.Sprintf("%s says you owe them", creditor.Name)
	body := fmt.Sprintf("%s %.2f — %s", payment.Currency, payment.Amount, payment.Description)

	ns.sendPush(debtor.FCMToken, title, body, map[string]string{
		"type":       "payment_requested",
		"payment_id": payment.ID.String(),
	})

	htmlBody := buildPaymentRequestEmailHTML(creditor.Name, debtor.Name, payment.Amount, payment.Currency, payment.Description)
	ns.sendEmail(debtor.Email, debtor.Name, fmt.Sprintf("%s requested a payment", creditor.Name), htmlBody)
}

// NotifyMemberAdded tells the newly added member about the trip.
func (ns *NotificationService) NotifyMemberAdded(trip models.Trip, adder models.User, newMember models.User) {
	title := fmt.Sprintf("You were added to \"%s\"", trip.Name)
	body := fmt.Sprintf("%s added you to the trip \"%s\"", adder.Name, trip.Name)

	ns.sendPush(newMember.FCMToken, title, body, map[string]string{
		"type":    "member_added",
		"trip_id": trip.ID.String(),
	})

	htmlBody := buildMemberAddedEmailHTML(adder.Name, newMember.Name, trip.Name)
	ns.sendEmail(newMember.Email, newMember.Name, title, htmlBody)
}

// NotifyInvitation emails a not-yet-registered person an invite link.
func (ns *NotificationService) NotifyInvitation(email string, inviterName string, tripName string) {
	subject := fmt.Sprintf("%s invited you to join \"%s\" on %s", inviterName, tripName, config.AppConfig.AppName)
	htmlBody := buildInvitationEmailHTML(inviterName, tripName)
	ns.sendEmail(email, "", subject, htmlBody)
}

// ============================================================
// EMAIL TEMPLATES
// ============================================================

func buildExpenseEmailHTML(payerName, userName, description string, amount float64, currency, tripName string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
	<div style="background: white; border-radius: 12px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
		<h2 style="color: #1DB954; margin-top: 0;">💰 New Expense Added</h2>
		<p>Hi <strong>%s</strong>,</p>
		<p><strong>%s</strong> added a new expense in <strong>%s</strong>:</p>
		<div style="background: #f8f9fa; border-radius: 8px; padding: 16px; margin: 16px 0;">
			<p style="margin: 4px 0; font-size: 18px;"><strong>%s</strong></p>
			<p style="margin: 4px 0; color: #666;">Total: %s %.2f</p>
		</div>
		<p>Open the app to see your updated settlement plan.</p>
		<p style="color: #999; font-size: 12px; margin-top: 24px;">— %s</p>
	</div>
</body>
</html>`, userName, payerName, tripName, description, currency, amount, config.AppConfig.AppName)
}

func buildSettlementEmailHTML(creditorName, debtorName string, amount float64, currency, tripName string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
	<div style="background: white; border-radius: 12px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
		<h2 style="color: #1DB954; margin-top: 0;">✅ Payment Confirmed</h2>
		<p>Hi <strong>%s</strong>,</p>
		<p><strong>%s</strong> confirmed receiving <strong>%s %.2f</strong> from you in <strong>%s</strong>.</p>
		<p>Check the app to see your remaining balances.</p>
		<p style="color: #999; font-size: 12px; margin-top: 24px;">— %s</p>
	</div>
</body>
</html>`, debtorName, creditorName, currency, amount, tripName, config.AppConfig.AppName)
}

func buildPaymentRequestEmailHTML(creditorName, debtorName string, amount float64, currency, description string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
	<div style="background: white; border-radius: 12px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
		<h2 style="color: #1DB954; margin-top: 0;">💳 Payment Requested</h2>
		<p>Hi <strong>%s</strong>,</p>
		<p><strong>%s</strong> recorded that you owe them <strong>%s %.2f</strong> for "%s".</p>
		<p style="color: #999; font-size: 12px; margin-top: 24px;">— %s</p>
	</div>
</body>
</html>`, debtorName, creditorName, currency, amount, description, config.AppConfig.AppName)
}

func buildMemberAddedEmailHTML(adderName, memberName, tripName string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
	<div style="background: white; border-radius: 12px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
		<h2 style="color: #1DB954; margin-top: 0;">👋 You've been added to a trip!</h2>
		<p>Hi <strong>%s</strong>,</p>
		<p><strong>%s</strong> added you to the trip <strong>"%s"</strong>.</p>
		<p>Open the app to start splitting expenses with your group!</p>
		<p style="color: #999; font-size: 12px; margin-top: 24px;">— %s</p>
	</div>
</body>
</html>`, memberName, adderName, tripName, config.AppConfig.AppName)
}

func buildInvitationEmailHTML(inviterName, tripName string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f5f5f5;">
	<div style="background: white; border-radius: 12px; padding: 32px; box-shadow: 0 2px 8px rgba(0,0,0,0.1);">
		<h2 style="color: #1DB954; margin-top: 0;">🎉 You're invited!</h2>
		<p><strong>%s</strong> invited you to join <strong>"%s"</strong> on %s.</p>
		<p>%s makes it easy to split trip expenses and settle up with friends.</p>
		<div style="margin: 24px 0;">
			<a href="%s" style="background: #1DB954; color: white; padding: 12px 32px; border-radius: 8px; text-decoration: none; font-weight: bold;">Join Now</a>
		</div>
		<p style="color: #999; font-size: 12px; margin-top: 24px;">— %s</p>
	</div>
</body>
</html>`, inviterName, tripName, config.AppConfig.AppName, config.AppConfig.AppName, config.AppConfig.AppURL, config.AppConfig.AppName)
}
