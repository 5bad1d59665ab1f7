package flows

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"smmpanel-bot/internal/stories/orders"
	"smmpanel-bot/internal/stories/users"
	"smmpanel-bot/internal/telegram/states"
)

func (e *Engine) choosePlatform(ctx context.Context, ev Event, lang string) (Result, error) {
	if err := e.clear(ctx, ev.UserID); err != nil {
		return Result{}, err
	}

	var rows [][]Button
	var row []Button
	for _, p := range e.catalog.Platforms() {
		row = append(row, Button{Text: p.Title, Data: PrefixPlatform + p.Key})
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []Button{e.menuButton(lang)})

	return Say(Reply{Text: e.text(lang, "order.choose_platform", nil), Buttons: rows}), nil
}

func (e *Engine) chooseService(lang, platformKey string) (Result, error) {
	platform, ok := e.catalog.Platform(platformKey)
	if !ok {
		return e.expired(lang), nil
	}

	var rows [][]Button
	for _, s := range e.catalog.Services(platform.Key) {
		rows = append(rows, []Button{{
			Text: s.Title + " · ₹" + s.Rate.String(),
			Data: PrefixService + platform.Key + "_" + s.Key,
		}})
	}
	rows = append(rows, []Button{{Text: e.text(lang, "buttons.back", nil), Data: CallbackNewOrder}})

	return Say(Reply{
		Text:    e.text(lang, "order.choose_service", map[string]interface{}{"platform": platform.Title}),
		Buttons: rows,
	}), nil
}

func (e *Engine) chooseQuality(lang, platformKey, serviceKey string) (Result, error) {
	service, ok := e.catalog.Service(platformKey, serviceKey)
	if !ok {
		return e.expired(lang), nil
	}

	var rows [][]Button
	for _, q := range e.catalog.Qualities() {
		rows = append(rows, []Button{{
			Text: q.Title + " ×" + q.Multiplier.String(),
			Data: PrefixQuality + platformKey + "_" + serviceKey + "_" + q.Key,
		}})
	}
	rows = append(rows, []Button{{Text: e.text(lang, "buttons.back", nil), Data: PrefixPlatform + platformKey}})

	return Say(Reply{
		Text:    e.text(lang, "order.choose_quality", map[string]interface{}{"service": service.Title, "rate": service.Rate.String()}),
		Buttons: rows,
	}), nil
}

// startOrder begins collecting link and quantity for a fully selected service.
func (e *Engine) startOrder(ctx context.Context, ev Event, lang, platformKey, serviceKey, qualityKey string) (Result, error) {
	if _, ok := e.catalog.Service(platformKey, serviceKey); !ok {
		return e.expired(lang), nil
	}
	if _, ok := e.catalog.Quality(qualityKey); !ok {
		return e.expired(lang), nil
	}

	return e.enter(ctx, ev.UserID, lang, states.Start(states.OrderWaitLink, map[string]string{
		states.KeyPlatform: platformKey,
		states.KeyService:  serviceKey,
		states.KeyQuality:  qualityKey,
	}))
}

// finalizeOrder prices the collected order and parks it as the user's
// pending order. The balance is checked only at confirmation.
func (e *Engine) finalizeOrder(ctx context.Context, ev Event, profile *users.Profile, conv states.Conversation, lang string) (Result, error) {
	data, err := required(conv, states.KeyPlatform, states.KeyService, states.KeyQuality, states.KeyLink, states.KeyQuantity)
	if err != nil {
		return Result{}, err
	}

	service, ok := e.catalog.Service(data[states.KeyPlatform], data[states.KeyService])
	if !ok {
		return Result{}, errors.New("unknown service " + data[states.KeyPlatform] + "/" + data[states.KeyService])
	}
	quality, ok := e.catalog.Quality(data[states.KeyQuality])
	if !ok {
		return Result{}, errors.New("unknown quality " + data[states.KeyQuality])
	}
	quantity, err := strconv.Atoi(data[states.KeyQuantity])
	if err != nil {
		return Result{}, err
	}

	pending, err := e.orders.CreatePending(ctx, orders.PendingOrder{
		UserID:   ev.UserID,
		Platform: service.Platform,
		Service:  service.Key,
		Quality:  quality.Key,
		Link:     data[states.KeyLink],
		Quantity: quantity,
		Price:    e.catalog.Price(service, quality, quantity),
	})
	if err != nil {
		return Result{}, err
	}

	if err := e.clear(ctx, ev.UserID); err != nil {
		return Result{}, err
	}
	e.metrics.FlowCompleted("order")

	platformTitle := service.Platform
	if p, ok := e.catalog.Platform(service.Platform); ok {
		platformTitle = p.Title
	}

	return Say(Reply{
		Text: e.text(lang, "order.summary", map[string]interface{}{
			"platform": platformTitle,
			"service":  service.Title,
			"quality":  quality.Title,
			"link":     pending.Link,
			"quantity": pending.Quantity,
			"price":    pending.Price.StringFixed(2),
			"balance":  profile.Balance.StringFixed(2),
		}),
		Buttons: [][]Button{
			{
				{Text: e.text(lang, "buttons.confirm", nil), Data: CallbackConfirmOrder},
				{Text: e.text(lang, "buttons.cancel", nil), Data: CallbackCancelOrder},
			},
		},
	}), nil
}

// confirmOrder debits the wallet and creates the order. With too little
// balance nothing changes and the pending order stays for a retry.
func (e *Engine) confirmOrder(ctx context.Context, ev Event, profile *users.Profile, lang string) (Result, error) {
	res, err := e.orders.Confirm(ctx, ev.UserID)

	var short *orders.InsufficientBalanceError
	switch {
	case errors.As(err, &short):
		e.metrics.BalanceRefused()
		return Say(Reply{
			Text: e.text(lang, "order.insufficient", map[string]interface{}{
				"required":  short.Required.StringFixed(2),
				"available": short.Available.StringFixed(2),
				"shortfall": short.Shortfall().StringFixed(2),
			}),
			Buttons: [][]Button{
				{{Text: e.text(lang, "buttons.add_funds", nil), Data: CallbackAddFunds}},
				{{Text: e.text(lang, "buttons.cancel", nil), Data: CallbackCancelOrder}},
			},
		}), nil

	case errors.Is(err, orders.ErrPendingOrderNotFound):
		return Say(Reply{
			Text:    e.text(lang, "order.no_pending", nil),
			Buttons: [][]Button{{{Text: e.text(lang, "buttons.new_order", nil), Data: CallbackNewOrder}}},
		}), nil

	case err != nil:
		return Result{}, err
	}

	e.metrics.OrderConfirmed()
	e.notifier.NotifyAdmins(ctx, e.text(defaultLanguage, "admin.new_order", map[string]interface{}{
		"order_id": res.Order.OrderID,
		"user_id":  ev.UserID,
		"name":     profile.DisplayName(),
		"service":  res.Order.Platform + " / " + res.Order.Service + " / " + res.Order.Quality,
		"quantity": res.Order.Quantity,
		"price":    res.Order.Price.StringFixed(2),
		"link":     res.Order.Link,
	}))

	return Say(Reply{
		Text: e.text(lang, "order.confirmed", map[string]interface{}{
			"order_id": res.Order.OrderID,
			"price":    res.Order.Price.StringFixed(2),
			"balance":  res.Balance.StringFixed(2),
			"status":   string(res.Order.Status),
		}),
		Buttons: [][]Button{
			{{Text: e.text(lang, "buttons.new_order", nil), Data: CallbackNewOrder}},
			{{Text: e.text(lang, "buttons.order_history", nil), Data: CallbackOrderHistory}},
			{e.menuButton(lang)},
		},
	}), nil
}

func (e *Engine) cancelOrder(ctx context.Context, ev Event, lang string) (Result, error) {
	dropped, err := e.orders.Cancel(ctx, ev.UserID)
	if err != nil {
		return Result{}, err
	}

	key := "order.cancelled"
	if !dropped {
		key = "order.no_pending"
	}
	return Say(Reply{Text: e.text(lang, key, nil), Buttons: [][]Button{{e.menuButton(lang)}}}), nil
}

// parseServiceData splits "<platform>_<service>". Service keys may contain
// underscores, platform keys never do.
func parseServiceData(rest string) (platform, service string, ok bool) {
	platform, service, ok = strings.Cut(rest, "_")
	return platform, service, ok && platform != "" && service != ""
}

// parseQualityData splits "<platform>_<service>_<quality>".
func parseQualityData(rest string) (platform, service, quality string, ok bool) {
	i := strings.LastIndex(rest, "_")
	if i < 0 {
		return "", "", "", false
	}
	platform, service, ok = parseServiceData(rest[:i])
	quality = rest[i+1:]
	return platform, service, quality, ok && quality != ""
}
