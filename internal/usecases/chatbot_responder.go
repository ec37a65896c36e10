package usecases

import (
	"regexp"
	"strings"

	"appointme.backend/internal/domain/entities"
)

type intentRule struct {
	pattern *regexp.Regexp
	intent  entities.Intent
}

// intentRules are evaluated in order; the first match wins.
var intentRules = []intentRule{
	{regexp.MustCompile(`\b(book|booking|appointment|service|schedule|available|price|cost)\b`), entities.IntentBooking},
	{regexp.MustCompile(`\b(provider|become|apply|application|join|register|verification|approve)\b`), entities.IntentProvider},
	{regexp.MustCompile(`\b(admin|approve|reject|manage|dashboard|review|application)\b`), entities.IntentAdmin},
	{regexp.MustCompile(`\b(payment|pay|money|transaction|refund|billing|charge)\b`), entities.IntentPayment},
	{regexp.MustCompile(`\b(how|help|error|problem|issue|support|trouble|login|password)\b`), entities.IntentTechnical},
}

// Classify maps a message to its intent, IntentGeneral when no rule matches.
func Classify(message string) entities.Intent {
	text := strings.ToLower(message)
	for _, rule := range intentRules {
		if rule.pattern.MatchString(text) {
			return rule.intent
		}
	}
	return entities.IntentGeneral
}

const (
	cannedIntro = "**Hello! I'm the AppointMe Assistant.**\n\n" +
		"I can help with anything about our home services marketplace: booking a service, becoming a provider, payments and more.\n\n" +
		"What can I help you with today?"

	cannedGreeting = "Hello and welcome to AppointMe, the marketplace for trusted home services. " +
		"Ask me about booking a service, becoming a provider, payments, or anything else about the platform."

	cannedBooking = "**How to book a service on AppointMe:**\n\n" +
		"1. Browse the available services\n" +
		"2. Pick the service that fits your needs\n" +
		"3. Choose a verified provider\n" +
		"4. Select your preferred date and time\n" +
		"5. Pay securely\n" +
		"6. Wait for the provider to confirm\n\n" +
		"**Popular services:** home cleaning, AC servicing, electrical works, plumbing, beauty and grooming, appliance repair. " +
		"Your account and booking details are filled in automatically."

	cannedProvider = "**Become an AppointMe provider:**\n\n" +
		"**You need:**\n- Valid credentials and documents\n- Relevant skills and experience\n\n" +
		"**Steps:**\n1. Submit your application with your documents\n2. An admin reviews your credentials\n" +
		"3. You get a notification with the decision\n4. Once approved, publish your services and start receiving bookings\n\n" +
		"Rejected applications can be submitted again."

	cannedPayment = "**Payments on AppointMe:**\n\n" +
		"- Prices are shown up front on every service\n- Payment status is tracked on each booking\n" +
		"- Transactions go through a secure gateway\n\n" +
		"**Refunds:** bookings cancelled before confirmation are refunded in full."

	cannedServices = "**Services on AppointMe:**\n\n" +
		"- Home cleaning\n- AC servicing\n- Electrical works\n- Plumbing\n- Beauty and grooming\n- Appliance repair\n\n" +
		"Every service is offered by a verified provider."

	cannedAdmin = "**What AppointMe admins do:**\n\n" +
		"- Review provider applications and verify credentials\n- Approve or reject applications\n" +
		"- Monitor service quality\n- Handle customer support escalations\n\n" +
		"Only approved providers can publish services."

	cannedTechnical = "**Need help?**\n\n" +
		"- **Login issues:** reset your password from the settings page\n" +
		"- **Account problems:** check your profile settings\n" +
		"- **Booking issues:** open your booking list or contact support\n\n" +
		"Tell me what went wrong and I'll point you in the right direction."

	cannedTracking = "**Tracking your bookings:**\n\n" +
		"Open your profile and go to the booking history to see every booking and its status.\n\n" +
		"**Statuses:**\n- Pending: waiting for the provider\n- Confirmed: the provider accepted\n- Completed: the service is done\n\n" +
		"You get a notification on every status change."

	cannedContact = "**Contact AppointMe support:**\n\n" +
		"- Live chat\n- Email\n- Phone\n\n" +
		"Most questions are answered within two hours."

	cannedCoverage = "**Where AppointMe operates:**\n\n" +
		"We cover the whole city, seven days a week, with same-day or next-day service in most areas."

	cannedAbout = "**About AppointMe:**\n\n" +
		"AppointMe connects customers with verified home service providers.\n\n" +
		"- Verified providers\n- Transparent pricing\n- Secure payments\n- Notifications on every booking update\n\n" +
		"Ask me about booking, becoming a provider, payments or tracking your bookings."

	cannedMenu = "**AppointMe Assistant here!**\n\n" +
		"I can help you with:\n\n" +
		"- **Booking services:** how to book, available services, pricing\n" +
		"- **Becoming a provider:** application process and requirements\n" +
		"- **Payments:** methods, security, refunds\n" +
		"- **Tracking:** booking status and history\n" +
		"- **Support:** contact and troubleshooting\n\n" +
		"Try asking \"How do I book a service?\" or \"How to become a provider?\""
)

type cannedRule struct {
	pattern  *regexp.Regexp
	response string
}

// cannedRules are evaluated in order; the first match wins.
var cannedRules = []cannedRule{
	{regexp.MustCompile(`\b(hello|hi|hey|good morning|good afternoon|good evening|greetings)\b`), cannedGreeting},
	{regexp.MustCompile(`\b(book|booking|appointment|schedule|reserve)\b`), cannedBooking},
	{regexp.MustCompile(`\b(provider|become|apply|application|join|register|verification)\b`), cannedProvider},
	{regexp.MustCompile(`\b(payment|pay|money|transaction|refund|billing|charge|cost|price)\b`), cannedPayment},
	{regexp.MustCompile(`\b(service|services|available|offer|what|categories)\b`), cannedServices},
	{regexp.MustCompile(`\b(admin|approve|reject|manage|dashboard|review|control)\b`), cannedAdmin},
	{regexp.MustCompile(`\b(how|help|error|problem|issue|support|trouble|login|password|account)\b`), cannedTechnical},
	{regexp.MustCompile(`\b(track|tracking|status|history|order)\b`), cannedTracking},
	{regexp.MustCompile(`\b(contact|call|phone|email|reach)\b`), cannedContact},
	{regexp.MustCompile(`\b(area|areas|coverage|location|where)\b`), cannedCoverage},
	{regexp.MustCompile(`\b(tell|about|info|information)\b`), cannedAbout},
}

// CannedResponse selects the static answer for a message.
func CannedResponse(message string) string {
	text := strings.ToLower(strings.TrimSpace(message))
	if text == "" {
		return cannedIntro
	}
	for _, rule := range cannedRules {
		if rule.pattern.MatchString(text) {
			return rule.response
		}
	}
	return cannedMenu
}

const platformContext = `You are AppointMe Assistant, the helper for the AppointMe home services marketplace.

ABOUT APPOINTME:
AppointMe connects customers with verified service providers for home services such as cleaning, AC servicing, electrical works, plumbing, beauty and grooming, and appliance repair.

CUSTOMERS:
- Sign up, browse services and book a provider.
- Bookings start as pending, become confirmed when the provider accepts, and completed when the work is done.
- Customers are notified on every status change and can cancel a booking.

PROVIDERS:
- Any user can apply to become a provider by submitting their real name and a document.
- An admin approves or rejects the application; rejected users may apply again.
- Approved providers publish services, confirm, complete or cancel bookings, and can mark all their services available.

ADMINS:
- Review pending provider applications, oldest first, and approve or reject them.

PAYMENTS:
- Prices are shown on every service and each booking tracks whether it is paid.

Answer questions about booking, provider applications, admin reviews, payments and the platform. Be helpful, professional and accurate.`

var intentFocus = map[entities.Intent]string{
	entities.IntentBooking:   "SPECIAL FOCUS: The user is asking about booking services. Explain the booking process, available services and pricing.",
	entities.IntentProvider:  "SPECIAL FOCUS: The user is asking about becoming a provider. Explain the application, requirements and approval process.",
	entities.IntentAdmin:     "SPECIAL FOCUS: The user is asking about admin functions. Explain how admins review, approve and reject applications.",
	entities.IntentPayment:   "SPECIAL FOCUS: The user is asking about payments. Explain pricing, payment status tracking and refunds.",
	entities.IntentTechnical: "SPECIAL FOCUS: The user has a technical question. Give step-by-step troubleshooting guidance.",
}

// BuildPrompt injects the platform context and the intent focus ahead of the question.
func BuildPrompt(message string, intent entities.Intent) string {
	focus, ok := intentFocus[intent]
	if !ok {
		focus = "Provide a comprehensive and helpful response about AppointMe."
	}

	var sb strings.Builder
	sb.WriteString(platformContext)
	sb.WriteString("\n\n")
	sb.WriteString(focus)
	sb.WriteString("\n\nUser Question: ")
	sb.WriteString(message)
	sb.WriteString("\n\nAppointMe Assistant Response:")
	return sb.String()
}

var quickResponses = []entities.QuickResponse{
	{Text: "How do I book a service?", Category: string(entities.IntentBooking)},
	{Text: "How to become a provider?", Category: string(entities.IntentProvider)},
	{Text: "What services are available?", Category: string(entities.IntentBooking)},
	{Text: "How does the payment system work?", Category: string(entities.IntentPayment)},
	{Text: "How do admins approve providers?", Category: string(entities.IntentAdmin)},
	{Text: "What are the service charges?", Category: string(entities.IntentPayment)},
	{Text: "How to track my booking?", Category: string(entities.IntentBooking)},
	{Text: "How to contact support?", Category: string(entities.IntentTechnical)},
	{Text: "What areas do you cover?", Category: string(entities.IntentGeneral)},
	{Text: "How to cancel a booking?", Category: string(entities.IntentBooking)},
}

var faqs = []entities.FAQ{
	{
		Question: "How does booking work?",
		Answer:   "Browse the services, pick a provider and a time, and book. The provider confirms the booking and you are notified of every status change.",
		Category: string(entities.IntentBooking),
	},
	{
		Question: "How do I become a provider?",
		Answer:   "Submit a provider application with your real name and a document link. An admin reviews it and you get a notification with the decision.",
		Category: string(entities.IntentProvider),
	},
	{
		Question: "What services are offered?",
		Answer:   "Home cleaning, AC servicing, electrical works, plumbing, beauty and grooming, appliance repair and more, all from verified providers.",
		Category: string(entities.IntentBooking),
	},
	{
		Question: "Are payments secure?",
		Answer:   "Payments go through a secure gateway and every booking tracks its payment status.",
		Category: string(entities.IntentPayment),
	},
	{
		Question: "How do I track my booking?",
		Answer:   "Open your booking history from your profile to see every booking with its current status.",
		Category: string(entities.IntentBooking),
	},
}
