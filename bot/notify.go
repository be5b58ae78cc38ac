package bot

import (
	"fmt"
	"strconv"

	"github.com/verateam/vera-bot/models"
)

// BookingReminderActions builds the one-hour reminder: the guest gets the
// confirm/cancel pair, admins get a copy without buttons. A booking filed
// without a sender identity is only announced to admins.
func BookingReminderActions(b *models.Booking, admins []int64) []Action {
	var actions []Action
	idStr := strconv.FormatUint(uint64(b.ID), 10)
	if b.UserID != nil {
		kb := &Keyboard{Rows: [][]Button{row(
			cb("✅ Подтверждаю", CmdBookingConfirm, idStr),
			cb("❌ Отменить", CmdBookingCancel, idStr),
		)}}
		text := fmt.Sprintf(
			"⏰ Напоминаем: через час ждём вас по брони на %s.\nПодтвердите, пожалуйста, визит:", b.DateTime)
		actions = append(actions, textAction(*b.UserID, text, kb))
	}
	note := fmt.Sprintf("⏰ Бронь #%d (%s, %s) через час, напоминание отправлено.",
		b.ID, b.FullName, b.DateTime)
	for _, admin := range admins {
		actions = append(actions, textAction(admin, note, nil))
	}
	return actions
}

// BookingAutoConfirmedActions announces a booking confirmed by timeout.
func BookingAutoConfirmedActions(b *models.Booking, admins []int64) []Action {
	var actions []Action
	if b.UserID != nil {
		actions = append(actions, textAction(*b.UserID,
			"✅ Ваша бронь на "+b.DateTime+" подтверждена автоматически. Ждём вас!", nil))
	}
	note := fmt.Sprintf("✅ Бронь #%d (%s, %s) подтверждена автоматически.",
		b.ID, b.FullName, b.DateTime)
	for _, admin := range admins {
		actions = append(actions, textAction(admin, note, nil))
	}
	return actions
}
