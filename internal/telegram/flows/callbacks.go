package flows

// Callback data sent by inline buttons. Prefixed values carry arguments
// separated by underscores.
const (
	CallbackMainMenu      = "main_menu"
	CallbackCreateAccount = "create_account"
	CallbackLoginAccount  = "login_account"
	CallbackUseTGName     = "use_telegram_name"
	CallbackShareContact  = "share_contact"
	CallbackEnterPhone    = "enter_phone_manually"
	CallbackMyAccount     = "my_account"
	CallbackBalance       = "balance"
	CallbackNewOrder      = "new_order"
	CallbackConfirmOrder  = "confirm_order"
	CallbackCancelOrder   = "cancel_order"
	CallbackOrderHistory  = "order_history"
	CallbackAddFunds      = "add_funds"
	CallbackAmountCustom  = "amount_custom"
	CallbackCreateTicket  = "create_ticket"
	CallbackViewTickets   = "view_tickets"
	CallbackEditProfile   = "edit_profile"
	CallbackSupport       = "support"
	CallbackLanguage      = "language"
	PrefixPlatform        = "platform_"
	PrefixService         = "service_"
	PrefixQuality         = "quality_"
	PrefixAmount          = "amount_"
	PrefixCheckPayment    = "check_payment_"
	PrefixEdit            = "edit_"
	PrefixLanguage        = "lang_"
)

// Commands understood by the bot.
const (
	CommandStart   = "start"
	CommandMenu    = "menu"
	CommandCancel  = "cancel"
	CommandBalance = "balance"
	CommandHelp    = "help"
)

var presetAmounts = []int{500, 1000, 2000, 5000}

var languages = []string{"en", "hi"}
