package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/verateam/vera-bot/models"
	"github.com/verateam/vera-bot/utils"
)

func (r *Router) handleStaffMenu(ev Event) []Action {
	return []Action{textAction(ev.Sender, "👨‍🍳 Staff-меню:", staffMenuKeyboard())}
}

// handleBookings shows the upcoming bookings: admins get a card per booking,
// staff a compact one-line list.
func (r *Router) handleBookings(ev Event) []Action {
	bookings, err := r.store.FutureBookings(time.Now())
	if err != nil {
		utils.ErrorLogger.Errorf("future bookings: %v", err)
		return []Action{textAction(ev.Sender, "⚠️ Не удалось загрузить брони.", staffMenuKeyboard())}
	}
	if len(bookings) == 0 {
		return []Action{textAction(ev.Sender, "📅 Будущих броней нет.", staffMenuKeyboard())}
	}

	if r.isAdmin(ev.Sender) {
		var actions []Action
		for _, b := range bookings {
			card := fmt.Sprintf(
				"📅 Бронь #%d\n👤 %s\n📞 %s\n🕐 %s\n📌 %s\n📝 %s\nСтатус: %s",
				b.ID, b.FullName, b.Phone, b.DateTime, b.Source, b.Notes, b.Status)
			actions = append(actions, textAction(ev.Sender, card, nil))
		}
		actions = append(actions, textAction(ev.Sender,
			fmt.Sprintf("Всего будущих броней: %d.", len(bookings)), backKeyboard(CmdAdminMenu, "")))
		return actions
	}

	var sb strings.Builder
	sb.WriteString("📅 Будущие брони:\n\n")
	for _, b := range bookings {
		fmt.Fprintf(&sb, "#%d %s — %s (%s)\n", b.ID, b.DateTime, b.FullName, b.Status)
	}
	return []Action{textAction(ev.Sender, sb.String(), staffMenuKeyboard())}
}

func (r *Router) handleKitchen(ev Event) []Action {
	return []Action{textAction(ev.Sender, "🍳 Какой список открыть?", kitchenRootKeyboard())}
}

func kitchenKindFromArg(arg string) (models.ListKind, bool) {
	switch models.ListKind(arg) {
	case models.ListStop:
		return models.ListStop, true
	case models.ListTogo:
		return models.ListTogo, true
	}
	return "", false
}

func kitchenTitle(kind models.ListKind) string {
	if kind == models.ListStop {
		return "🛑 Stop-list"
	}
	return "📦 To-go list"
}

func (r *Router) kitchenListKeyboard(kind models.ListKind) *Keyboard {
	kb := &Keyboard{}
	entries, err := r.store.ListKitchenEntries(kind)
	if err != nil {
		utils.ErrorLogger.Errorf("kitchen list %s: %v", kind, err)
	}
	for _, e := range entries {
		kb.Rows = append(kb.Rows, row(cb(
			"🗑 "+e.Title, CmdKitchenDelete,
			fmt.Sprintf("%s:%d", kind, e.ID))))
	}
	kb.Rows = append(kb.Rows,
		row(cb("➕ Добавить", CmdKitchenAdd, string(kind))),
		row(cb("🔙 Назад", CmdKitchen, "")),
	)
	return kb
}

func (r *Router) handleKitchenList(ev Event) []Action {
	kind, ok := kitchenKindFromArg(ev.Arg)
	if !ok {
		return []Action{textAction(ev.Sender, "🍳 Какой список открыть?", kitchenRootKeyboard())}
	}
	entries, err := r.store.ListKitchenEntries(kind)
	if err != nil {
		utils.ErrorLogger.Errorf("kitchen list %s: %v", kind, err)
		return []Action{textAction(ev.Sender, "⚠️ Не удалось загрузить список.", kitchenRootKeyboard())}
	}
	text := kitchenTitle(kind)
	if len(entries) == 0 {
		text += "\n\nСписок пуст."
	} else {
		text += "\n\nНажмите на позицию, чтобы убрать её:"
	}
	return []Action{textAction(ev.Sender, text, r.kitchenListKeyboard(kind))}
}

func (r *Router) handleKitchenAdd(ev Event) []Action {
	kind, ok := kitchenKindFromArg(ev.Arg)
	if !ok {
		return []Action{textAction(ev.Sender, "🍳 Какой список открыть?", kitchenRootKeyboard())}
	}
	return r.startFlow(ev.Sender, r.kitchenAddFlow(kind))
}

func (r *Router) handleKitchenDelete(ev Event) []Action {
	// Arg is "<kind>:<id>".
	kindStr, idStr, found := strings.Cut(ev.Arg, ":")
	if !found {
		return []Action{textAction(ev.Sender, "🍳 Какой список открыть?", kitchenRootKeyboard())}
	}
	kind, ok := kitchenKindFromArg(kindStr)
	if !ok {
		return []Action{textAction(ev.Sender, "🍳 Какой список открыть?", kitchenRootKeyboard())}
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return []Action{textAction(ev.Sender, "⚠️ Неверная позиция.", r.kitchenListKeyboard(kind))}
	}
	if err := r.store.DeleteKitchenEntry(kind, uint(id)); err != nil {
		utils.ErrorLogger.Errorf("kitchen delete %s/%d: %v", kind, id, err)
		return []Action{textAction(ev.Sender, "⚠️ Не удалось удалить позицию.", r.kitchenListKeyboard(kind))}
	}
	return []Action{textAction(ev.Sender, kitchenTitle(kind)+"\n\n✅ Позиция убрана.", r.kitchenListKeyboard(kind))}
}

// Menu management.

func (r *Router) handleMenuManage(ev Event) []Action {
	return []Action{textAction(ev.Sender, "🍽 Управление меню:", menuManageKeyboard())}
}

func (r *Router) handleMenuAdd(ev Event) []Action {
	return r.startFlow(ev.Sender, r.menuAddFlow())
}

func (r *Router) handleMenuList(ev Event) []Action {
	items, err := r.store.ListMenuItems()
	if err != nil {
		utils.ErrorLogger.Errorf("menu list: %v", err)
		return []Action{textAction(ev.Sender, "⚠️ Не удалось загрузить меню.", menuManageKeyboard())}
	}
	if len(items) == 0 {
		return []Action{textAction(ev.Sender, "Меню пока пустое.", menuManageKeyboard())}
	}
	kb := &Keyboard{}
	for _, item := range items {
		mark := "✅"
		if !item.IsActive {
			mark = "🚫"
		}
		label := fmt.Sprintf("%s %s (%.2f)", mark, item.Title, item.Price)
		kb.Rows = append(kb.Rows, row(
			cb(label, CmdMenuEdit, strconv.FormatUint(uint64(item.ID), 10)),
			cb("🗑", CmdMenuDelete, strconv.FormatUint(uint64(item.ID), 10)),
		))
	}
	kb.Rows = append(kb.Rows, row(cb("🔙 Назад", CmdMenuManage, "")))
	return []Action{textAction(ev.Sender, "📋 Позиции меню:", kb)}
}

var menuEditFields = []struct {
	field string
	label string
}{
	{"title", "✏️ Название"},
	{"description", "📝 Описание"},
	{"price", "💰 Цена"},
	{"category", "🗂 Категория"},
	{"photo", "📸 Фото"},
	{"active", "🔛 Активность"},
}

func (r *Router) handleMenuEdit(ev Event) []Action {
	id, err := strconv.ParseUint(ev.Arg, 10, 32)
	if err != nil {
		return []Action{textAction(ev.Sender, "⚠️ Неверная позиция.", menuManageKeyboard())}
	}
	item, err := r.store.GetMenuItem(uint(id))
	if err != nil || item == nil {
		return []Action{textAction(ev.Sender, "⚠️ Позиция не найдена.", menuManageKeyboard())}
	}
	active := "да"
	if !item.IsActive {
		active = "нет"
	}
	card := fmt.Sprintf(
		"%s\n%s\nКатегория: %s\nЦена: %.2f\nАктивна: %s\n\nЧто изменить?",
		item.Title, item.Description, item.Category, item.Price, active)
	kb := &Keyboard{}
	for _, f := range menuEditFields {
		kb.Rows = append(kb.Rows, row(cb(f.label, CmdMenuField, ev.Arg+":"+f.field)))
	}
	kb.Rows = append(kb.Rows, row(cb("🔙 Назад", CmdMenuList, "")))
	return []Action{textAction(ev.Sender, card, kb)}
}

func (r *Router) handleMenuField(ev Event) []Action {
	idStr, field, found := strings.Cut(ev.Arg, ":")
	if !found {
		return []Action{textAction(ev.Sender, "⚠️ Неверная позиция.", menuManageKeyboard())}
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return []Action{textAction(ev.Sender, "⚠️ Неверная позиция.", menuManageKeyboard())}
	}
	known := false
	for _, f := range menuEditFields {
		if f.field == field {
			known = true
			break
		}
	}
	if !known {
		return []Action{textAction(ev.Sender, "⚠️ Неизвестное поле.", menuManageKeyboard())}
	}
	return r.startFlow(ev.Sender, r.menuEditFlow(uint(id), field))
}

func (r *Router) handleMenuDelete(ev Event) []Action {
	id, err := strconv.ParseUint(ev.Arg, 10, 32)
	if err != nil {
		return []Action{textAction(ev.Sender, "⚠️ Неверная позиция.", menuManageKeyboard())}
	}
	if err := r.store.DeleteMenuItem(uint(id)); err != nil {
		utils.ErrorLogger.Errorf("menu delete %d: %v", id, err)
		return []Action{textAction(ev.Sender, "⚠️ Не удалось удалить позицию.", menuManageKeyboard())}
	}
	return append([]Action{textAction(ev.Sender, "✅ Позиция удалена.", nil)}, r.handleMenuList(ev)...)
}
