package bot

import (
	"github.com/verateam/vera-bot/conversation"
	"github.com/verateam/vera-bot/models"
)

func (r *Router) mainMenuKeyboard(role models.Role) *Keyboard {
	kb := &Keyboard{Rows: [][]Button{
		row(cb("📅 Забронировать столик", CmdBook, "")),
		row(cb("📖 Посмотреть меню", CmdMenuBrowse, "")),
		row(cb("📸 Фотографии", CmdPhotos, "")),
		row(cb("📨 Обратная связь", CmdFeedback, "")),
	}}
	if role >= models.RoleStaff {
		kb.Rows = append(kb.Rows,
			row(cb("👨‍🍳 Staff-меню", CmdStaffMenu, "")),
			row(cb("⚙️ Админ меню", CmdAdminMenu, "")),
		)
	}
	return kb
}

func backMainKeyboard() *Keyboard {
	return &Keyboard{Rows: [][]Button{
		row(cb("🔙 В главное меню", CmdMainMenu, "")),
	}}
}

func backKeyboard(cmd Command, arg string) *Keyboard {
	return &Keyboard{Rows: [][]Button{
		row(cb("🔙 Назад", cmd, arg)),
	}}
}

func (r *Router) feedbackKeyboard() *Keyboard {
	return &Keyboard{Rows: [][]Button{
		row(link("🌐 Официальный сайт", r.cfg.SiteURL)),
		row(cb("📲 Связаться с нами", CmdFeedbackContacts, "")),
		row(cb("🔙 Назад", CmdMainMenu, "")),
	}}
}

func (r *Router) feedbackContactsKeyboard() *Keyboard {
	return &Keyboard{Rows: [][]Button{
		row(link("👩‍💼 Управляющая", "https://t.me/"+r.cfg.ManagerUsername)),
		row(link("🛠 Тех. специалист", "https://t.me/"+r.cfg.TechUsername)),
		row(cb("🔙 Назад", CmdFeedback, "")),
	}}
}

func adminMenuKeyboard() *Keyboard {
	return &Keyboard{Rows: [][]Button{
		row(cb("👥 Пользователи", CmdUsers, "")),
		row(cb("📅 Брони", CmdBookings, "")),
		row(cb("📦 Импорт/экспорт", CmdIO, "")),
		row(cb("📸 Управление фото", CmdPhotoManage, "")),
		row(cb("🔙 Назад", CmdMainMenu, "")),
	}}
}

func usersMenuKeyboard() *Keyboard {
	return &Keyboard{Rows: [][]Button{
		row(cb("➕ Создать", CmdUserCreate, "")),
		row(cb("✏️ Изменить", CmdUserEditList, "")),
		row(cb("🗑 Удалить", CmdUserDeleteList, "")),
		row(cb("🔙 Назад", CmdAdminMenu, "")),
	}}
}

func staffMenuKeyboard() *Keyboard {
	return &Keyboard{Rows: [][]Button{
		row(cb("🍽 Меню (управление)", CmdMenuManage, "")),
		row(cb("🍳 Кухня", CmdKitchen, "")),
		row(cb("📅 Брони", CmdBookings, "")),
		row(cb("🔙 Назад", CmdMainMenu, "")),
	}}
}

func menuManageKeyboard() *Keyboard {
	return &Keyboard{Rows: [][]Button{
		row(cb("➕ Добавить позицию", CmdMenuAdd, "")),
		row(cb("📋 Список / Редактировать", CmdMenuList, "")),
		row(cb("🔙 Назад", CmdStaffMenu, "")),
	}}
}

func (r *Router) menuBrowseKeyboard() *Keyboard {
	return &Keyboard{Rows: [][]Button{
		row(link("🌐 Открыть сайт", r.cfg.SiteURL+"/menu")),
		row(cb("🗂 Внутри бота", CmdMenuInside, "")),
		row(cb("🔙 Назад", CmdMainMenu, "")),
	}}
}

func menuCategoriesKeyboard() *Keyboard {
	return &Keyboard{Rows: [][]Button{
		row(cb("🍽 Еда", CmdMenuCategory, "Еда")),
		row(cb("🥤 Напитки", CmdMenuCategory, "Напитки")),
		row(cb("🍰 Десерты", CmdMenuCategory, "Десерты")),
		row(cb("🔙 Назад", CmdMenuBrowse, "")),
	}}
}

func kitchenRootKeyboard() *Keyboard {
	return &Keyboard{Rows: [][]Button{
		row(cb("🛑 Stop-list", CmdKitchenList, string(models.ListStop))),
		row(cb("📦 To-go list", CmdKitchenList, string(models.ListTogo))),
		row(cb("🔙 Назад", CmdStaffMenu, "")),
	}}
}

func ioMenuKeyboard() *Keyboard {
	return &Keyboard{Rows: [][]Button{
		row(cb("⬇️ Экспорт бронирований (CSV)", CmdExport, "bookings")),
		row(cb("⬇️ Экспорт сотрудников (CSV)", CmdExport, "staff")),
		row(cb("⬇️ Экспорт меню (CSV)", CmdExport, "menu")),
		row(cb("⬆️ Импорт бронирований (CSV)", CmdImport, "bookings")),
		row(cb("⬆️ Импорт сотрудников (CSV)", CmdImport, "staff")),
		row(cb("⬆️ Импорт меню (CSV)", CmdImport, "menu")),
		row(cb("🔙 Назад", CmdAdminMenu, "")),
	}}
}

// stepKeyboard renders a conversation step: its fixed options first, then
// skip when allowed, then the back/cancel pair every flow carries.
func stepKeyboard(step *conversation.Step) *Keyboard {
	kb := &Keyboard{}
	var optRow []Button
	for _, opt := range step.Options {
		optRow = append(optRow, cb(opt.Label, CmdFlowOption, opt.Value))
		if len(optRow) == 3 {
			kb.Rows = append(kb.Rows, optRow)
			optRow = nil
		}
	}
	if len(optRow) > 0 {
		kb.Rows = append(kb.Rows, optRow)
	}
	if step.Skippable {
		kb.Rows = append(kb.Rows, row(cb("➡️ Пропустить", CmdFlowSkip, "")))
	}
	kb.Rows = append(kb.Rows, row(
		cb("⬅️ Назад", CmdFlowBack, ""),
		cb("✖️ Отмена", CmdFlowCancel, ""),
	))
	return kb
}
