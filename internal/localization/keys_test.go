package localization

var usedKeys = []string{
	"welcome.new", "menu.main", "menu.use_menu", "help.text", "support.text",
	"presence.back_online", "errors.generic", "context.expired",
	"cancel.done", "cancel.nothing", "language.choose", "language.changed",
	"input.photo_expected", "input.text_expected",
	"contact.out_of_context", "contact.tap_button",

	"account.ask_name", "account.ask_phone", "account.ask_phone_manual", "account.ask_email",
	"account.already_created", "account.no_telegram_name", "account.processing",
	"account.created", "account.required", "account.details",
	"login.ask_phone", "login.success", "login.mismatch", "login.not_found",

	"order.choose_platform", "order.choose_service", "order.choose_quality",
	"order.ask_link", "order.ask_quantity", "order.summary", "order.confirmed",
	"order.insufficient", "order.cancelled", "order.no_pending",
	"orders.history_title", "orders.history_line", "orders.history_empty",

	"funds.choose_amount", "funds.ask_amount", "funds.payment_created", "funds.pending",
	"funds.credited", "funds.already_credited", "funds.failed", "funds.payment_not_found",
	"funds.auto_credited", "balance.text",

	"ticket.ask_subject", "ticket.ask_description", "ticket.created",
	"tickets.list_title", "tickets.list_line", "tickets.list_empty",

	"edit.menu", "edit.updated", "edit.cancel_hint",
	"edit.ask_name", "edit.ask_phone", "edit.ask_email", "edit.ask_bio",
	"edit.ask_location", "edit.ask_birthday", "edit.ask_photo",
	"edit.field_name", "edit.field_phone", "edit.field_email", "edit.field_bio",
	"edit.field_location", "edit.field_birthday", "edit.field_photo",

	"admin.bot_online", "admin.new_ticket", "admin.new_order",

	"buttons.main_menu", "buttons.create_account", "buttons.login", "buttons.use_telegram_name",
	"buttons.share_contact", "buttons.send_contact", "buttons.try_again", "buttons.enter_manually",
	"buttons.new_order", "buttons.add_funds", "buttons.my_account", "buttons.order_history",
	"buttons.create_ticket", "buttons.view_tickets", "buttons.edit_profile", "buttons.support",
	"buttons.language", "buttons.back", "buttons.cancel", "buttons.confirm", "buttons.pay",
	"buttons.check_payment", "buttons.check_again", "buttons.custom_amount",

	"validation.name.too_short", "validation.name.too_long",
	"validation.phone.empty", "validation.phone.letters", "validation.phone.country_code",
	"validation.phone.length", "validation.phone.not_digits", "validation.phone.same_digits",
	"validation.phone.sequential", "validation.phone.first_digit", "validation.phone.zeros",
	"validation.phone.pattern", "validation.phone.reserved", "validation.phone.fake",
	"validation.phone.taken", "validation.phone.contact_not_own", "validation.phone.contact_empty",
	"validation.email.format", "validation.email.multiple_at", "validation.email.local_length",
	"validation.email.domain", "validation.email.tld", "validation.email.main_domain",
	"validation.email.suspicious", "validation.email.provider", "validation.email.local_chars",
	"validation.email.local_dots", "validation.email.double_dots", "validation.email.too_long",
	"validation.email.typo", "validation.email.domain_chars",
	"validation.link.scheme", "validation.link.domain",
	"validation.number.invalid", "validation.number.too_small", "validation.number.too_large",
	"validation.text.too_short", "validation.text.too_long",
	"validation.birthday.format", "validation.birthday.range",
	"validation.photo.missing",
}
