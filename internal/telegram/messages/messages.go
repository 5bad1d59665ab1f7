package messages

// Texts the transport needs before or outside localization.
const (
	Error = "❌ Something went wrong. Please send /start and try again."
)

// Command menu descriptions.
const (
	CommandStart   = "Start the bot"
	CommandMenu    = "Main menu"
	CommandBalance = "Wallet balance"
	CommandCancel  = "Stop editing the profile"
	CommandHelp    = "How to use the bot"
)
