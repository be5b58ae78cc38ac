package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/verateam/vera-bot/csvio"
	"github.com/verateam/vera-bot/models"
	"github.com/verateam/vera-bot/utils"
)

func (r *Router) handleAdminMenu(ev Event) []Action {
	if !r.isAdmin(ev.Sender) {
		return []Action{textAction(ev.Sender, "Этот раздел доступен только администраторам 🙏", backMainKeyboard())}
	}
	return []Action{textAction(ev.Sender, "⚙️ Админ меню:", adminMenuKeyboard())}
}

// Users.

func (r *Router) handleUsers(ev Event) []Action {
	users, err := r.store.ListUsers(50)
	if err != nil {
		utils.ErrorLogger.Errorf("list users: %v", err)
		return []Action{textAction(ev.Sender, "⚠️ Не удалось загрузить пользователей.", adminMenuKeyboard())}
	}
	var b strings.Builder
	b.WriteString("👥 Пользователи (последние 50):\n\n")
	for _, u := range users {
		name := u.FullName
		if name == "" {
			name = "(без имени)"
		}
		fmt.Fprintf(&b, "%d — %s, %s\n", u.ID, name, u.Role)
	}
	if len(users) == 0 {
		b.WriteString("Пока никого нет.\n")
	}
	return []Action{textAction(ev.Sender, b.String(), usersMenuKeyboard())}
}

func (r *Router) handleUserCreate(ev Event) []Action {
	return r.startFlow(ev.Sender, r.staffCreateFlow())
}

func (r *Router) staffPickKeyboard(action Command, backTo Command) (*Keyboard, error) {
	users, err := r.store.ListUsersByRole(models.RoleStaff, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	kb := &Keyboard{}
	for _, u := range users {
		label := fmt.Sprintf("%s (%d)", u.FullName, u.ID)
		kb.Rows = append(kb.Rows, row(cb(label, action, strconv.FormatInt(u.ID, 10))))
	}
	kb.Rows = append(kb.Rows, row(cb("🔙 Назад", backTo, "")))
	return kb, nil
}

func (r *Router) handleUserEditList(ev Event) []Action {
	kb, err := r.staffPickKeyboard(CmdUserEdit, CmdUsers)
	if err != nil {
		utils.ErrorLogger.Errorf("user edit list: %v", err)
		return []Action{textAction(ev.Sender, "⚠️ Не удалось загрузить сотрудников.", usersMenuKeyboard())}
	}
	return []Action{textAction(ev.Sender, "✏️ Кого изменить?", kb)}
}

var userEditFields = []struct {
	field string
	label string
}{
	{"fullname", "✏️ ФИО"},
	{"phone", "📞 Телефон"},
	{"passport", "🪪 Паспорт"},
	{"role", "🎖 Роль"},
}

func (r *Router) handleUserEdit(ev Event) []Action {
	id, err := strconv.ParseInt(ev.Arg, 10, 64)
	if err != nil {
		return []Action{textAction(ev.Sender, "⚠️ Неверный пользователь.", usersMenuKeyboard())}
	}
	u, err := r.store.GetUser(id)
	if err != nil || u == nil {
		return []Action{textAction(ev.Sender, "⚠️ Пользователь не найден.", usersMenuKeyboard())}
	}
	card := fmt.Sprintf(
		"👤 %s\n🆔 %d\n📞 %s\n🪪 %s\nРоль: %s\n\nЧто изменить?",
		u.FullName, u.ID, u.Phone, u.Passport, u.Role)
	kb := &Keyboard{}
	for _, f := range userEditFields {
		kb.Rows = append(kb.Rows, row(cb(f.label, CmdUserField, ev.Arg+":"+f.field)))
	}
	kb.Rows = append(kb.Rows, row(cb("🔙 Назад", CmdUserEditList, "")))
	return []Action{textAction(ev.Sender, card, kb)}
}

func (r *Router) handleUserField(ev Event) []Action {
	idStr, field, found := strings.Cut(ev.Arg, ":")
	if !found {
		return []Action{textAction(ev.Sender, "⚠️ Неверный пользователь.", usersMenuKeyboard())}
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return []Action{textAction(ev.Sender, "⚠️ Неверный пользователь.", usersMenuKeyboard())}
	}
	if field == "role" {
		kb := &Keyboard{Rows: [][]Button{
			row(cb("Гость", CmdUserRole, idStr+":guest")),
			row(cb("Сотрудник", CmdUserRole, idStr+":staff")),
			row(cb("Администратор", CmdUserRole, idStr+":admin")),
			row(cb("🔙 Назад", CmdUserEdit, idStr)),
		}}
		return []Action{textAction(ev.Sender, "🎖 Выберите роль:", kb)}
	}
	known := false
	for _, f := range userEditFields {
		if f.field == field {
			known = true
			break
		}
	}
	if !known {
		return []Action{textAction(ev.Sender, "⚠️ Неизвестное поле.", usersMenuKeyboard())}
	}
	return r.startFlow(ev.Sender, r.userEditFlow(id, field))
}

func (r *Router) handleUserRole(ev Event) []Action {
	idStr, roleStr, found := strings.Cut(ev.Arg, ":")
	if !found {
		return []Action{textAction(ev.Sender, "⚠️ Неверный пользователь.", usersMenuKeyboard())}
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return []Action{textAction(ev.Sender, "⚠️ Неверный пользователь.", usersMenuKeyboard())}
	}
	role := models.ParseRole(roleStr)
	if err := r.store.UpdateUserField(id, "role", role); err != nil {
		utils.ErrorLogger.Errorf("set role %d=%s: %v", id, role, err)
		return []Action{textAction(ev.Sender, "⚠️ Не удалось изменить роль.", usersMenuKeyboard())}
	}
	return []Action{textAction(ev.Sender, fmt.Sprintf("✅ Роль обновлена: %s.", role), usersMenuKeyboard())}
}

func (r *Router) handleUserDeleteList(ev Event) []Action {
	kb, err := r.staffPickKeyboard(CmdUserDeleteAsk, CmdUsers)
	if err != nil {
		utils.ErrorLogger.Errorf("user delete list: %v", err)
		return []Action{textAction(ev.Sender, "⚠️ Не удалось загрузить сотрудников.", usersMenuKeyboard())}
	}
	return []Action{textAction(ev.Sender, "🗑 Кого удалить?", kb)}
}

func (r *Router) handleUserDeleteAsk(ev Event) []Action {
	id, err := strconv.ParseInt(ev.Arg, 10, 64)
	if err != nil {
		return []Action{textAction(ev.Sender, "⚠️ Неверный пользователь.", usersMenuKeyboard())}
	}
	u, err := r.store.GetUser(id)
	if err != nil || u == nil {
		return []Action{textAction(ev.Sender, "⚠️ Пользователь не найден.", usersMenuKeyboard())}
	}
	kb := &Keyboard{Rows: [][]Button{
		row(cb("🗑 Да, удалить", CmdUserDelete, ev.Arg)),
		row(cb("🔙 Нет, назад", CmdUserDeleteList, "")),
	}}
	return []Action{textAction(ev.Sender,
		fmt.Sprintf("Удалить пользователя %s (%d)?", u.FullName, u.ID), kb)}
}

func (r *Router) handleUserDelete(ev Event) []Action {
	id, err := strconv.ParseInt(ev.Arg, 10, 64)
	if err != nil {
		return []Action{textAction(ev.Sender, "⚠️ Неверный пользователь.", usersMenuKeyboard())}
	}
	if err := r.store.DeleteUser(id); err != nil {
		utils.ErrorLogger.Errorf("delete user %d: %v", id, err)
		return []Action{textAction(ev.Sender, "⚠️ Не удалось удалить пользователя.", usersMenuKeyboard())}
	}
	return []Action{textAction(ev.Sender, "✅ Пользователь удалён.", usersMenuKeyboard())}
}

// Import/export.

func csvKindFromArg(arg string) (csvio.Kind, bool) {
	switch csvio.Kind(arg) {
	case csvio.KindBookings:
		return csvio.KindBookings, true
	case csvio.KindStaff:
		return csvio.KindStaff, true
	case csvio.KindMenu:
		return csvio.KindMenu, true
	}
	return "", false
}

func (r *Router) handleIO(ev Event) []Action {
	return []Action{textAction(ev.Sender, "📦 Импорт и экспорт данных (CSV, разделитель «;»):", ioMenuKeyboard())}
}

func (r *Router) handleExport(ev Event) []Action {
	kind, ok := csvKindFromArg(ev.Arg)
	if !ok {
		return []Action{textAction(ev.Sender, "⚠️ Неизвестный тип экспорта.", ioMenuKeyboard())}
	}
	data, filename, err := csvio.Export(r.store, kind)
	if err != nil {
		utils.ErrorLogger.Errorf("export %s: %v", kind, err)
		return []Action{textAction(ev.Sender, "⚠️ Экспорт не удался.", ioMenuKeyboard())}
	}
	return []Action{
		documentAction(ev.Sender, data, filename, ""),
		textAction(ev.Sender, "⬇️ Готово.", ioMenuKeyboard()),
	}
}

func (r *Router) handleImport(ev Event) []Action {
	kind, ok := csvKindFromArg(ev.Arg)
	if !ok {
		return []Action{textAction(ev.Sender, "⚠️ Неизвестный тип импорта.", ioMenuKeyboard())}
	}
	return r.startFlow(ev.Sender, r.importFlow(kind))
}

// Photo management.

func (r *Router) handlePhotoManage(ev Event) []Action {
	kb := &Keyboard{Rows: [][]Button{
		row(cb("➕ Добавить фото", CmdPhotoAdd, "")),
		row(cb("📋 Список фото", CmdPhotoList, "")),
		row(cb("🔙 Назад", CmdAdminMenu, "")),
	}}
	return []Action{textAction(ev.Sender, "📸 Управление фотографиями:", kb)}
}

func (r *Router) handlePhotoAdd(ev Event) []Action {
	return r.startFlow(ev.Sender, r.photoAddFlow())
}

func (r *Router) handlePhotoList(ev Event) []Action {
	photos, err := r.store.ListPhotos(10)
	if err != nil {
		utils.ErrorLogger.Errorf("photo list: %v", err)
		return []Action{textAction(ev.Sender, "⚠️ Не удалось загрузить фотографии.", adminMenuKeyboard())}
	}
	if len(photos) == 0 {
		return []Action{textAction(ev.Sender, "Фотографий пока нет.", adminMenuKeyboard())}
	}
	var actions []Action
	for _, p := range photos {
		idStr := strconv.FormatUint(uint64(p.ID), 10)
		kb := &Keyboard{Rows: [][]Button{row(
			cb("🔄 Заменить", CmdPhotoReplace, idStr),
			cb("🗑 Удалить", CmdPhotoDelete, idStr),
		)}}
		actions = append(actions, photoAction(ev.Sender, p.FileID, p.Caption, kb))
	}
	actions = append(actions, textAction(ev.Sender, "Это все фотографии.", backKeyboard(CmdPhotoManage, "")))
	return actions
}

func (r *Router) handlePhotoReplace(ev Event) []Action {
	id, err := strconv.ParseUint(ev.Arg, 10, 32)
	if err != nil {
		return []Action{textAction(ev.Sender, "⚠️ Неверное фото.", adminMenuKeyboard())}
	}
	return r.startFlow(ev.Sender, r.photoReplaceFlow(uint(id)))
}

func (r *Router) handlePhotoDelete(ev Event) []Action {
	id, err := strconv.ParseUint(ev.Arg, 10, 32)
	if err != nil {
		return []Action{textAction(ev.Sender, "⚠️ Неверное фото.", adminMenuKeyboard())}
	}
	if err := r.store.DeletePhoto(uint(id)); err != nil {
		utils.ErrorLogger.Errorf("photo delete %d: %v", id, err)
		return []Action{textAction(ev.Sender, "⚠️ Не удалось удалить фото.", adminMenuKeyboard())}
	}
	return []Action{textAction(ev.Sender, "✅ Фото удалено.", backKeyboard(CmdPhotoManage, ""))}
}
