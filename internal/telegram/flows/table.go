package flows

import (
	"context"
	"slices"
	"time"

	"smmpanel-bot/internal/stories/users"
	"smmpanel-bot/internal/telegram/flows/validators"
	"smmpanel-bot/internal/telegram/states"
)

const (
	minTicketSubject     = 5
	maxTicketSubject     = 100
	minTicketDescription = 10
	maxTicketDescription = 2000
	maxBio               = 200
	maxLocation          = 100
)

// finalizer commits a completed flow. It owns clearing the conversation.
type finalizer func(ctx context.Context, ev Event, profile *users.Profile, conv states.Conversation, lang string) (Result, error)

// check runs after validation for rules that need to look at stored data.
type check func(ctx context.Context, profile *users.Profile, value string) (validators.Result, error)

// rule describes one step: what it accepts, where the accepted value goes
// and what comes next. Exactly one of next and finalize is set.
type rule struct {
	flow     string
	channels []Channel
	validate validators.Validator
	check    check
	key      string
	next     states.Step
	finalize finalizer
	prompt   func(lang string, conv states.Conversation) Reply
}

func (r rule) accepts(ch Channel) bool {
	return slices.Contains(r.channels, ch)
}

var (
	textOnly     = []Channel{ChannelText}
	textOrPhone  = []Channel{ChannelText, ChannelContact}
	photoOnly    = []Channel{ChannelPhoto}
	editFieldsOf = map[states.Step]users.Field{
		states.EditWaitName:     users.FieldName,
		states.EditWaitPhone:    users.FieldPhone,
		states.EditWaitEmail:    users.FieldEmail,
		states.EditWaitBio:      users.FieldBio,
		states.EditWaitLocation: users.FieldLocation,
		states.EditWaitBirthday: users.FieldBirthday,
		states.EditWaitPhoto:    users.FieldPhoto,
	}
)

func (e *Engine) buildTable() map[states.Step]rule {
	t := map[states.Step]rule{
		states.AccountWaitName: {
			flow:     "account",
			channels: textOnly,
			validate: validators.CustomName,
			key:      states.KeyFullName,
			next:     states.AccountWaitPhone,
			prompt:   e.promptName,
		},
		states.AccountWaitPhone: {
			flow:     "account",
			channels: textOrPhone,
			validate: validators.Phone,
			check:    e.phoneFree,
			key:      states.KeyPhoneNumber,
			next:     states.AccountWaitEmail,
			prompt:   e.promptPhone("account.ask_phone"),
		},
		states.AccountWaitEmail: {
			flow:     "account",
			channels: textOnly,
			validate: validators.Email,
			key:      states.KeyEmail,
			finalize: e.finalizeAccount,
			prompt:   e.promptText("account.ask_email", true),
		},
		states.LoginWaitPhone: {
			flow:     "login",
			channels: textOrPhone,
			validate: validators.Phone,
			key:      states.KeyPhoneNumber,
			finalize: e.finalizeLogin,
			prompt:   e.promptPhone("login.ask_phone"),
		},
		states.OrderWaitLink: {
			flow:     "order",
			channels: textOnly,
			validate: validators.Link(e.catalog.Domains),
			key:      states.KeyLink,
			next:     states.OrderWaitQuantity,
			prompt:   e.promptLink,
		},
		states.OrderWaitQuantity: {
			flow:     "order",
			channels: textOnly,
			validate: validators.IntBetween(e.limits.MinQuantity, e.limits.MaxQuantity),
			key:      states.KeyQuantity,
			finalize: e.finalizeOrder,
			prompt:   e.promptQuantity,
		},
		states.FundsWaitAmount: {
			flow:     "funds",
			channels: textOnly,
			validate: validators.IntBetween(e.limits.MinAmount, e.limits.MaxAmount),
			key:      states.KeyAmount,
			finalize: e.finalizeAmount,
			prompt:   e.promptAmount,
		},
		states.TicketWaitSubject: {
			flow:     "ticket",
			channels: textOnly,
			validate: validators.TextBetween(minTicketSubject, maxTicketSubject),
			key:      states.KeySubject,
			next:     states.TicketWaitDescription,
			prompt:   e.promptText("ticket.ask_subject", false),
		},
		states.TicketWaitDescription: {
			flow:     "ticket",
			channels: textOnly,
			validate: validators.TextBetween(minTicketDescription, maxTicketDescription),
			key:      states.KeyDescription,
			finalize: e.finalizeTicket,
			prompt:   e.promptText("ticket.ask_description", false),
		},
	}

	t[states.EditWaitName] = e.editRule(textOnly, validators.ProfileName, nil)
	t[states.EditWaitPhone] = e.editRule(textOnly, validators.Phone, e.phoneFree)
	t[states.EditWaitEmail] = e.editRule(textOnly, validators.Email, nil)
	t[states.EditWaitBio] = e.editRule(textOnly, validators.TextBetween(1, maxBio), nil)
	t[states.EditWaitLocation] = e.editRule(textOnly, validators.TextBetween(1, maxLocation), nil)
	t[states.EditWaitBirthday] = e.editRule(textOnly, validators.Birthday(func() time.Time { return e.now() }), nil)
	t[states.EditWaitPhoto] = e.editRule(photoOnly, validators.PhotoID, nil)

	return t
}

func (e *Engine) editRule(channels []Channel, validate validators.Validator, c check) rule {
	return rule{
		flow:     "edit",
		channels: channels,
		validate: validate,
		check:    c,
		key:      states.KeyValue,
		finalize: e.finalizeEdit,
		prompt:   e.promptEdit,
	}
}

// phoneFree rejects numbers already bound to another account.
func (e *Engine) phoneFree(ctx context.Context, profile *users.Profile, phone string) (validators.Result, error) {
	taken, err := e.users.PhoneTakenByOther(ctx, profile.TelegramID, phone)
	if err != nil {
		return validators.Result{}, err
	}
	if taken {
		return validators.Reject(validators.ReasonPhoneTaken, nil), nil
	}
	return validators.Accept(phone), nil
}
