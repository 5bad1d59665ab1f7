package flows

import (
	"context"
	"fmt"

	"smmpanel-bot/internal/stories/users"
	"smmpanel-bot/internal/telegram/flows/validators"
	"smmpanel-bot/internal/telegram/states"
)

// handleInput feeds free input (text, contact, photo) to the current step.
// Rejected input leaves the conversation untouched.
func (e *Engine) handleInput(ctx context.Context, ev Event, profile *users.Profile, lang string) (Result, error) {
	conv, err := e.states.Get(ctx, ev.UserID)
	if err != nil {
		return Result{}, err
	}

	if conv.Idle() {
		if ev.Channel == ChannelContact {
			return e.say(lang, "contact.out_of_context", nil), nil
		}
		return e.idleReply(profile, lang), nil
	}

	r, ok := e.table[conv.Step]
	if !ok {
		return Result{}, fmt.Errorf("no rule for step %q", conv.Step)
	}

	if !r.accepts(ev.Channel) {
		switch {
		case ev.Channel == ChannelContact:
			return e.say(lang, "contact.out_of_context", nil), nil
		case r.accepts(ChannelPhoto):
			return e.say(lang, "input.photo_expected", nil), nil
		default:
			return e.say(lang, "input.text_expected", nil), nil
		}
	}

	var res validators.Result
	if ev.Channel == ChannelContact {
		if ev.Contact == nil {
			res = validators.Reject(validators.ReasonContactEmptyPhone, nil)
		} else {
			res = validators.ContactPhone(ev.UserID, ev.Contact.UserID, ev.Contact.PhoneNumber)
		}
	} else {
		res = r.validate(ev.Payload, conv.Data)
	}

	if res.Accepted && r.check != nil {
		if res, err = r.check(ctx, profile, res.Value); err != nil {
			return Result{}, err
		}
	}

	if !res.Accepted {
		return e.reject(ev, conv.Step, lang, res), nil
	}

	return e.advance(ctx, ev, profile, lang, conv, r, res.Value)
}

// advance stores value under the step's key and either moves to the next
// step or runs the finalizer.
func (e *Engine) advance(ctx context.Context, ev Event, profile *users.Profile, lang string, conv states.Conversation, r rule, value string) (Result, error) {
	conv = conv.With(conv.Step, r.key, value)

	if r.finalize != nil {
		return r.finalize(ctx, ev, profile, conv, lang)
	}

	next := conv.With(r.next, "", "")
	if err := e.states.Set(ctx, ev.UserID, next); err != nil {
		return Result{}, err
	}

	return Say(e.table[r.next].prompt(lang, next)), nil
}

func (e *Engine) reject(ev Event, step states.Step, lang string, res validators.Result) Result {
	e.metrics.InputRejected(string(step))
	e.logger.Debug("Input rejected", "user_id", ev.UserID, "step", step, "reason", res.Reason)

	reply := Reply{Text: e.text(lang, res.Reason, res.Params)}
	if res.Reason == validators.ReasonContactNotOwn {
		reply.Buttons = [][]Button{
			{{Text: e.text(lang, "buttons.try_again", nil), Data: CallbackShareContact}},
			{{Text: e.text(lang, "buttons.enter_manually", nil), Data: CallbackEnterPhone}},
		}
	}
	return Say(reply)
}

// clear ends the flow of userID.
func (e *Engine) clear(ctx context.Context, userID int64) error {
	return e.states.Delete(ctx, userID)
}

func required(conv states.Conversation, keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		v, ok := conv.Get(k)
		if !ok || v == "" {
			return nil, fmt.Errorf("conversation at %q has no %q", conv.Step, k)
		}
		out[k] = v
	}
	return out, nil
}
