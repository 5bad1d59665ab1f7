package states

// Step is the closed set of points at which a conversation waits for input.
type Step string

// StepNone means the user is idle and no input is expected.
const StepNone Step = ""

// acc -> account creation
// lgn -> login by phone
// ord -> new order
// fnd -> add funds
// tkt -> support ticket
// edt -> profile editing

const (
	AccountWaitName  Step = "acc_wt_name"
	AccountWaitPhone Step = "acc_wt_phone"
	AccountWaitEmail Step = "acc_wt_email"
)

const (
	LoginWaitPhone Step = "lgn_wt_phone"
)

const (
	OrderWaitLink     Step = "ord_wt_link"
	OrderWaitQuantity Step = "ord_wt_quantity"
)

const (
	FundsWaitAmount Step = "fnd_wt_amount"
)

const (
	TicketWaitSubject     Step = "tkt_wt_subject"
	TicketWaitDescription Step = "tkt_wt_description"
)

const (
	EditWaitName     Step = "edt_wt_name"
	EditWaitPhone    Step = "edt_wt_phone"
	EditWaitEmail    Step = "edt_wt_email"
	EditWaitBio      Step = "edt_wt_bio"
	EditWaitLocation Step = "edt_wt_location"
	EditWaitBirthday Step = "edt_wt_birthday"
	EditWaitPhoto    Step = "edt_wt_photo"
)

var allSteps = []Step{
	AccountWaitName, AccountWaitPhone, AccountWaitEmail,
	LoginWaitPhone,
	OrderWaitLink, OrderWaitQuantity,
	FundsWaitAmount,
	TicketWaitSubject, TicketWaitDescription,
	EditWaitName, EditWaitPhone, EditWaitEmail, EditWaitBio, EditWaitLocation, EditWaitBirthday, EditWaitPhoto,
}

// AllSteps lists every step except StepNone.
func AllSteps() []Step {
	out := make([]Step, len(allSteps))
	copy(out, allSteps)
	return out
}

// Known reports whether s is a declared step. Values read back from a store
// that do not match are treated as idle.
func (s Step) Known() bool {
	for _, k := range allSteps {
		if k == s {
			return true
		}
	}
	return false
}

// IsEditing reports whether /cancel may leave this step.
func (s Step) IsEditing() bool {
	switch s {
	case EditWaitName, EditWaitPhone, EditWaitEmail, EditWaitBio, EditWaitLocation, EditWaitBirthday, EditWaitPhoto:
		return true
	}
	return false
}

// Keys of Conversation.Data.
const (
	KeyFullName    = "full_name"
	KeyPhoneNumber = "phone_number"
	KeyEmail       = "email"
	KeyPlatform    = "platform"
	KeyService     = "service"
	KeyQuality     = "quality"
	KeyLink        = "link"
	KeyQuantity    = "quantity"
	KeySubject     = "subject"
	KeyDescription = "description"
	KeyAmount      = "amount"
	KeyValue       = "value"
)

// Conversation is what the bot is currently asking a user for and what it
// has collected so far. An idle conversation has no data.
type Conversation struct {
	Step Step              `json:"step"`
	Data map[string]string `json:"data,omitempty"`
}

func (c Conversation) Idle() bool {
	return c.Step == StepNone || !c.Step.Known()
}

func (c Conversation) Get(key string) (string, bool) {
	v, ok := c.Data[key]
	return v, ok
}

// With returns a copy advanced to step with key set to value.
func (c Conversation) With(step Step, key, value string) Conversation {
	data := make(map[string]string, len(c.Data)+1)
	for k, v := range c.Data {
		data[k] = v
	}
	if key != "" {
		data[key] = value
	}
	return Conversation{Step: step, Data: data}
}

// Start begins a fresh flow at step with optional seed data.
func Start(step Step, seed map[string]string) Conversation {
	data := make(map[string]string, len(seed))
	for k, v := range seed {
		data[k] = v
	}
	return Conversation{Step: step, Data: data}
}
