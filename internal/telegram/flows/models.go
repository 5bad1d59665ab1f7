package flows

import "time"

// Channel is the kind of inbound event.
type Channel string

const (
	ChannelText     Channel = "text"
	ChannelContact  Channel = "contact"
	ChannelPhoto    Channel = "photo"
	ChannelCallback Channel = "callback"
	ChannelCommand  Channel = "command"
)

// Contact is a phone number shared through the platform's contact button.
type Contact struct {
	PhoneNumber string
	UserID      int64
}

// Event is one inbound update, already stripped of transport details.
type Event struct {
	UserID    int64
	ChatID    int64
	Channel   Channel
	Payload   string // text, callback data, photo file id or command name
	Args      string
	Contact   *Contact
	Username  string
	FirstName string
	SentAt    time.Time
}

// DisplayName is what the platform calls the user.
func (e Event) DisplayName() string {
	if e.FirstName != "" {
		return e.FirstName
	}
	return e.Username
}

type Button struct {
	Text string
	Data string
	URL  string
}

// Reply is one outbound message. The transport decides how to deliver it.
type Reply struct {
	Text           string
	Buttons        [][]Button
	ContactButton  string // non-empty asks the client for its phone number
	RemoveKeyboard bool
	Delay          time.Duration
}

// Result is everything the bot says in response to one event.
type Result struct {
	Replies []Reply
}

func Say(replies ...Reply) Result {
	return Result{Replies: replies}
}

func (r Result) Empty() bool {
	return len(r.Replies) == 0
}
