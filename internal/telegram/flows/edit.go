package flows

import (
	"context"
	"fmt"

	"smmpanel-bot/internal/stories/users"
	"smmpanel-bot/internal/telegram/states"
)

var editOrder = []users.Field{
	users.FieldName, users.FieldPhone, users.FieldEmail, users.FieldBio,
	users.FieldLocation, users.FieldBirthday, users.FieldPhoto,
}

func (e *Engine) editMenu(lang string, profile *users.Profile) Reply {
	var rows [][]Button
	for i := 0; i < len(editOrder); i += 2 {
		var row []Button
		for _, f := range editOrder[i:min(i+2, len(editOrder))] {
			row = append(row, Button{Text: e.text(lang, "edit.field_"+string(f), nil), Data: PrefixEdit + string(f)})
		}
		rows = append(rows, row)
	}
	rows = append(rows, []Button{e.menuButton(lang)})

	return Reply{
		Text: e.text(lang, "edit.menu", map[string]interface{}{
			"name":     profile.FullName,
			"phone":    profile.PhoneNumber,
			"email":    profile.Email,
			"bio":      orDash(profile.Bio),
			"location": orDash(profile.Location),
			"birthday": orDash(profile.Birthday),
		}),
		Buttons: rows,
	}
}

func (e *Engine) startEdit(ctx context.Context, ev Event, lang, field string) (Result, error) {
	for step, f := range editFieldsOf {
		if string(f) == field {
			return e.enter(ctx, ev.UserID, lang, states.Start(step, nil))
		}
	}
	return e.expired(lang), nil
}

func (e *Engine) finalizeEdit(ctx context.Context, ev Event, _ *users.Profile, conv states.Conversation, lang string) (Result, error) {
	field, ok := editFieldsOf[conv.Step]
	if !ok {
		return Result{}, fmt.Errorf("step %q edits no field", conv.Step)
	}
	data, err := required(conv, states.KeyValue)
	if err != nil {
		return Result{}, err
	}

	updated, err := e.users.UpdateField(ctx, ev.UserID, field, data[states.KeyValue])
	if err != nil {
		return Result{}, err
	}

	if err := e.clear(ctx, ev.UserID); err != nil {
		return Result{}, err
	}
	e.metrics.FlowCompleted("edit")

	return Say(
		Reply{Text: e.text(lang, "edit.updated", map[string]interface{}{"field": e.text(lang, "edit.field_"+string(field), nil)})},
		e.editMenu(lang, updated),
	), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
