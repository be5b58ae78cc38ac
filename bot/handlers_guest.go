package bot

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/verateam/vera-bot/conversation"
	"github.com/verateam/vera-bot/models"
	"github.com/verateam/vera-bot/utils"
)

func (r *Router) handleStart(ev Event) []Action {
	if _, err := r.store.EnsureUser(ev.Sender, ev.SenderName, ev.SenderUsername); err != nil {
		utils.ErrorLogger.Errorf("ensure user %d: %v", ev.Sender, err)
	}
	greeting := "🌷 Добро пожаловать в VERA!\nЗдесь можно забронировать столик, посмотреть меню и фотографии."
	return []Action{textAction(ev.Sender, greeting, r.mainMenuKeyboard(r.RoleOf(ev.Sender)))}
}

func (r *Router) handleMainMenu(ev Event) []Action {
	r.engine.Cancel(ev.Sender)
	return r.mainMenuActions(ev.Sender)
}

func (r *Router) handleBookStart(ev Event) []Action {
	return r.startFlow(ev.Sender, r.bookingFlow())
}

func (r *Router) handleMenuBrowse(ev Event) []Action {
	return []Action{textAction(ev.Sender, "📖 Где посмотреть меню?", r.menuBrowseKeyboard())}
}

func (r *Router) handleMenuInside(ev Event) []Action {
	return []Action{textAction(ev.Sender, "🗂 Выберите категорию:", menuCategoriesKeyboard())}
}

func (r *Router) handleMenuCategory(ev Event) []Action {
	items, err := r.store.ActiveMenuByCategory(ev.Arg)
	if err != nil {
		utils.ErrorLogger.Errorf("menu category %q: %v", ev.Arg, err)
		return []Action{textAction(ev.Sender, "⚠️ Не удалось загрузить меню.", backKeyboard(CmdMenuInside, ""))}
	}
	if len(items) == 0 {
		return []Action{textAction(ev.Sender, "Пока в этой категории пусто 🙈", backKeyboard(CmdMenuInside, ""))}
	}
	var actions []Action
	for _, item := range items {
		caption := fmt.Sprintf("%s\n%s\n💰 %.2f", item.Title, item.Description, item.Price)
		if fileID, ok := item.PhotoFileID(); ok {
			actions = append(actions, photoAction(ev.Sender, fileID, caption, nil))
		} else {
			actions = append(actions, textAction(ev.Sender, caption, nil))
		}
	}
	actions = append(actions, textAction(ev.Sender, "Это всё в категории «"+ev.Arg+"».", backKeyboard(CmdMenuInside, "")))
	return actions
}

func (r *Router) handlePhotos(ev Event) []Action {
	photos, err := r.store.ListPhotos(10)
	if err != nil {
		utils.ErrorLogger.Errorf("list photos: %v", err)
		return []Action{textAction(ev.Sender, "⚠️ Не удалось загрузить фотографии.", backMainKeyboard())}
	}
	if len(photos) == 0 {
		return []Action{textAction(ev.Sender, "Фотографий пока нет, но скоро появятся 📷", backMainKeyboard())}
	}
	var actions []Action
	for _, p := range photos {
		actions = append(actions, photoAction(ev.Sender, p.FileID, p.Caption, nil))
	}
	actions = append(actions, textAction(ev.Sender, "Ждём вас в гости! 🌸", backMainKeyboard()))
	return actions
}

func (r *Router) handleFeedback(ev Event) []Action {
	return []Action{textAction(ev.Sender, "📨 Мы всегда на связи:", r.feedbackKeyboard())}
}

func (r *Router) handleFeedbackContacts(ev Event) []Action {
	return []Action{textAction(ev.Sender, "📲 Напишите нам напрямую:", r.feedbackContactsKeyboard())}
}

// Flow navigation. Every multi-step dialog shares these four callbacks.

func (r *Router) handleFlowBack(ev Event) []Action {
	flowName, ok := r.engine.Active(ev.Sender)
	if !ok {
		return r.mainMenuActions(ev.Sender)
	}
	res, err := r.engine.GoBack(ev.Sender)
	if err != nil {
		return r.mainMenuActions(ev.Sender)
	}
	return r.renderStep(ev.Sender, flowName, res)
}

func (r *Router) handleFlowCancel(ev Event) []Action {
	flowName, ok := r.engine.Active(ev.Sender)
	if !ok {
		return r.mainMenuActions(ev.Sender)
	}
	r.engine.Cancel(ev.Sender)
	return r.cancelledActions(ev.Sender, flowName)
}

func (r *Router) handleFlowSkip(ev Event) []Action {
	flowName, ok := r.engine.Active(ev.Sender)
	if !ok {
		return r.mainMenuActions(ev.Sender)
	}
	res, err := r.engine.Skip(ev.Sender)
	if err != nil {
		if errors.Is(err, conversation.ErrNoSession) {
			return r.mainMenuActions(ev.Sender)
		}
		return r.flowFailureActions(ev.Sender, flowName, err)
	}
	return r.renderStep(ev.Sender, flowName, res)
}

// handleFlowOption routes a pressed option through the same path free text
// takes, so confirm-step declines behave identically for both.
func (r *Router) handleFlowOption(ev Event) []Action {
	return r.submitToFlow(ev, conversation.Input{Choice: ev.Arg})
}

// Booking confirm/cancel buttons arrive from reminder messages. A guest may
// only act on their own booking; staff may act on any.

func (r *Router) bookingFromArg(ev Event) (*models.Booking, []Action) {
	id, err := strconv.ParseUint(ev.Arg, 10, 32)
	if err != nil {
		return nil, r.mainMenuActions(ev.Sender)
	}
	booking, err := r.store.GetBooking(uint(id))
	if err != nil {
		utils.ErrorLogger.Errorf("get booking %d: %v", id, err)
		return nil, []Action{textAction(ev.Sender, "⚠️ Бронь не найдена.", backMainKeyboard())}
	}
	if booking == nil {
		return nil, []Action{textAction(ev.Sender, "⚠️ Бронь не найдена.", backMainKeyboard())}
	}
	own := booking.UserID != nil && *booking.UserID == ev.Sender
	if !own && !r.isStaff(ev.Sender) {
		return nil, []Action{textAction(ev.Sender, deniedText, nil)}
	}
	return booking, nil
}

func (r *Router) handleBookingConfirm(ev Event) []Action {
	booking, fail := r.bookingFromArg(ev)
	if booking == nil {
		return fail
	}
	if err := r.store.ConfirmBooking(booking.ID); err != nil {
		utils.ErrorLogger.Errorf("confirm booking %d: %v", booking.ID, err)
		return []Action{textAction(ev.Sender, "⚠️ Не получилось подтвердить бронь.", backMainKeyboard())}
	}
	actions := []Action{textAction(ev.Sender, "✅ Бронь подтверждена. Ждём вас!", backMainKeyboard())}
	note := fmt.Sprintf("✅ Бронь #%d (%s, %s) подтверждена гостем.", booking.ID, booking.FullName, booking.DateTime)
	for _, admin := range r.AdminTargets() {
		if admin == ev.Sender {
			continue
		}
		actions = append(actions, textAction(admin, note, nil))
	}
	return actions
}

func (r *Router) handleBookingCancel(ev Event) []Action {
	booking, fail := r.bookingFromArg(ev)
	if booking == nil {
		return fail
	}
	if err := r.store.CancelBooking(booking.ID); err != nil {
		utils.ErrorLogger.Errorf("cancel booking %d: %v", booking.ID, err)
		return []Action{textAction(ev.Sender, "⚠️ Не получилось отменить бронь.", backMainKeyboard())}
	}
	actions := []Action{textAction(ev.Sender, "❌ Бронь отменена. Будем рады видеть вас в другой раз!", backMainKeyboard())}
	note := fmt.Sprintf("❌ Бронь #%d (%s, %s) отменена гостем.", booking.ID, booking.FullName, booking.DateTime)
	for _, admin := range r.AdminTargets() {
		if admin == ev.Sender {
			continue
		}
		actions = append(actions, textAction(admin, note, nil))
	}
	return actions
}
