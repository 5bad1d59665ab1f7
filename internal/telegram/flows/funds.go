package flows

import (
	"context"
	"errors"
	"slices"
	"strconv"

	"github.com/shopspring/decimal"

	"smmpanel-bot/internal/stories/payment"
	"smmpanel-bot/internal/stories/users"
	"smmpanel-bot/internal/telegram/states"
)

var hundred = decimal.NewFromInt(100)

func (e *Engine) chooseAmount(lang string, profile *users.Profile) Result {
	var rows [][]Button
	for i := 0; i < len(presetAmounts); i += 2 {
		var row []Button
		for _, amount := range presetAmounts[i:min(i+2, len(presetAmounts))] {
			row = append(row, Button{Text: "₹" + strconv.Itoa(amount), Data: PrefixAmount + strconv.Itoa(amount)})
		}
		rows = append(rows, row)
	}
	rows = append(rows,
		[]Button{{Text: e.text(lang, "buttons.custom_amount", nil), Data: CallbackAmountCustom}},
		[]Button{e.menuButton(lang)},
	)

	return Say(Reply{
		Text: e.text(lang, "funds.choose_amount", map[string]interface{}{
			"balance":        profile.Balance.StringFixed(2),
			"card_fee":       e.limits.CardFeePercent.String(),
			"netbanking_fee": e.limits.NetbankingFeePercent.String(),
			"min":            e.limits.MinAmount,
			"max":            e.limits.MaxAmount,
		}),
		Buttons: rows,
	})
}

func (e *Engine) presetAmount(ctx context.Context, ev Event, profile *users.Profile, lang, raw string) (Result, error) {
	amount, err := strconv.Atoi(raw)
	if err != nil || !slices.Contains(presetAmounts, amount) {
		return e.expired(lang), nil
	}
	return e.topUp(ctx, ev, profile, lang, amount)
}

func (e *Engine) customAmount(ctx context.Context, ev Event, lang string) (Result, error) {
	return e.enter(ctx, ev.UserID, lang, states.Start(states.FundsWaitAmount, nil))
}

func (e *Engine) finalizeAmount(ctx context.Context, ev Event, profile *users.Profile, conv states.Conversation, lang string) (Result, error) {
	data, err := required(conv, states.KeyAmount)
	if err != nil {
		return Result{}, err
	}
	amount, err := strconv.Atoi(data[states.KeyAmount])
	if err != nil {
		return Result{}, err
	}

	if err := e.clear(ctx, ev.UserID); err != nil {
		return Result{}, err
	}
	return e.topUp(ctx, ev, profile, lang, amount)
}

// topUp creates a payment and hands the user the pay link. Mock payments
// are credited on creation.
func (e *Engine) topUp(ctx context.Context, ev Event, profile *users.Profile, lang string, amount int) (Result, error) {
	p, err := e.payments.CreateTopUp(ctx, payment.TopUpRequest{UserID: ev.UserID, Rupees: int64(amount)})
	if err != nil {
		return Result{}, err
	}
	e.metrics.FlowCompleted("funds")

	if p.Credited {
		e.metrics.TopUpCredited()
		updated, err := e.users.GetProfile(ctx, ev.UserID)
		if err != nil {
			return Result{}, err
		}
		return Say(Reply{
			Text: e.text(lang, "funds.credited", map[string]interface{}{
				"amount":  p.Amount.StringFixed(2),
				"balance": updated.Balance.StringFixed(2),
			}),
			Buttons: [][]Button{
				{{Text: e.text(lang, "buttons.new_order", nil), Data: CallbackNewOrder}},
				{e.menuButton(lang)},
			},
		}), nil
	}

	var rows [][]Button
	if p.PaymentURL != nil && *p.PaymentURL != "" {
		rows = append(rows, []Button{{Text: e.text(lang, "buttons.pay", nil), URL: *p.PaymentURL}})
	}
	rows = append(rows,
		[]Button{{Text: e.text(lang, "buttons.check_payment", nil), Data: PrefixCheckPayment + strconv.FormatInt(p.ID, 10)}},
		[]Button{e.menuButton(lang)},
	)

	return Say(Reply{
		Text: e.text(lang, "funds.payment_created", map[string]interface{}{
			"amount":         p.Amount.StringFixed(2),
			"card_fee":       fee(p.Amount, e.limits.CardFeePercent),
			"netbanking_fee": fee(p.Amount, e.limits.NetbankingFeePercent),
			"balance":        profile.Balance.StringFixed(2),
		}),
		Buttons: rows,
	}), nil
}

func (e *Engine) checkPayment(ctx context.Context, ev Event, lang, raw string) (Result, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return e.expired(lang), nil
	}

	res, err := e.payments.CheckTopUp(ctx, id)
	if errors.Is(err, payment.ErrPaymentNotFound) {
		return e.say(lang, "funds.payment_not_found", nil), nil
	}
	if err != nil {
		return Result{}, err
	}
	if res.Payment.UserID != ev.UserID {
		return e.say(lang, "funds.payment_not_found", nil), nil
	}

	params := map[string]interface{}{
		"amount":  res.Payment.Amount.StringFixed(2),
		"balance": res.Balance.StringFixed(2),
	}

	switch {
	case res.JustCredited:
		e.metrics.TopUpCredited()
		return Say(Reply{
			Text: e.text(lang, "funds.credited", params),
			Buttons: [][]Button{
				{{Text: e.text(lang, "buttons.new_order", nil), Data: CallbackNewOrder}},
				{e.menuButton(lang)},
			},
		}), nil

	case res.Payment.Credited:
		return Say(Reply{Text: e.text(lang, "funds.already_credited", params), Buttons: [][]Button{{e.menuButton(lang)}}}), nil

	case res.Payment.Status == payment.StatusPending:
		return Say(Reply{
			Text: e.text(lang, "funds.pending", params),
			Buttons: [][]Button{
				{{Text: e.text(lang, "buttons.check_again", nil), Data: PrefixCheckPayment + raw}},
			},
		}), nil
	}

	return Say(Reply{Text: e.text(lang, "funds.failed", params), Buttons: [][]Button{{e.menuButton(lang)}}}), nil
}

func fee(amount, percent decimal.Decimal) string {
	return amount.Mul(percent).Div(hundred).Round(2).StringFixed(2)
}
