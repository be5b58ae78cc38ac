package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/verateam/vera-bot/config"
	"github.com/verateam/vera-bot/conversation"
	"github.com/verateam/vera-bot/models"
	"github.com/verateam/vera-bot/store"
	"github.com/verateam/vera-bot/utils"
)

const deniedText = "⛔ Нет доступа"

// Router is the single entry point of the core: one inbound Event in, an
// ordered list of outbound Actions out. It owns the dispatch table, the
// conversation engine, and the role gate in front of every command.
type Router struct {
	cfg    *config.Config
	store  *store.Store
	engine *conversation.Engine
}

func NewRouter(cfg *config.Config, st *store.Store) *Router {
	return &Router{cfg: cfg, store: st, engine: conversation.NewEngine()}
}

type handlerFunc func(r *Router, ev Event) []Action

type route struct {
	minRole models.Role
	handle  handlerFunc
}

// routes is the closed command table. A command not in the table is not a
// command; free-form strings cannot reach a handler.
var routes = map[Command]route{
	CmdStart:    {models.RoleGuest, (*Router).handleStart},
	CmdMainMenu: {models.RoleGuest, (*Router).handleMainMenu},

	CmdBook:             {models.RoleGuest, (*Router).handleBookStart},
	CmdMenuBrowse:       {models.RoleGuest, (*Router).handleMenuBrowse},
	CmdMenuInside:       {models.RoleGuest, (*Router).handleMenuInside},
	CmdMenuCategory:     {models.RoleGuest, (*Router).handleMenuCategory},
	CmdPhotos:           {models.RoleGuest, (*Router).handlePhotos},
	CmdFeedback:         {models.RoleGuest, (*Router).handleFeedback},
	CmdFeedbackContacts: {models.RoleGuest, (*Router).handleFeedbackContacts},

	CmdFlowBack:   {models.RoleGuest, (*Router).handleFlowBack},
	CmdFlowCancel: {models.RoleGuest, (*Router).handleFlowCancel},
	CmdFlowSkip:   {models.RoleGuest, (*Router).handleFlowSkip},
	CmdFlowOption: {models.RoleGuest, (*Router).handleFlowOption},

	CmdBookingConfirm: {models.RoleGuest, (*Router).handleBookingConfirm},
	CmdBookingCancel:  {models.RoleGuest, (*Router).handleBookingCancel},

	CmdStaffMenu:     {models.RoleStaff, (*Router).handleStaffMenu},
	CmdBookings:      {models.RoleStaff, (*Router).handleBookings},
	CmdKitchen:       {models.RoleStaff, (*Router).handleKitchen},
	CmdKitchenList:   {models.RoleStaff, (*Router).handleKitchenList},
	CmdKitchenAdd:    {models.RoleStaff, (*Router).handleKitchenAdd},
	CmdKitchenDelete: {models.RoleStaff, (*Router).handleKitchenDelete},
	CmdMenuManage:    {models.RoleStaff, (*Router).handleMenuManage},
	CmdMenuAdd:       {models.RoleStaff, (*Router).handleMenuAdd},
	CmdMenuList:      {models.RoleStaff, (*Router).handleMenuList},
	CmdMenuEdit:      {models.RoleStaff, (*Router).handleMenuEdit},
	CmdMenuField:     {models.RoleStaff, (*Router).handleMenuField},
	CmdMenuDelete:    {models.RoleStaff, (*Router).handleMenuDelete},

	// Staff see the admin door; the handler answers politely. Everything
	// behind it is admin-only.
	CmdAdminMenu:      {models.RoleStaff, (*Router).handleAdminMenu},
	CmdUsers:          {models.RoleAdmin, (*Router).handleUsers},
	CmdUserCreate:     {models.RoleAdmin, (*Router).handleUserCreate},
	CmdUserEditList:   {models.RoleAdmin, (*Router).handleUserEditList},
	CmdUserEdit:       {models.RoleAdmin, (*Router).handleUserEdit},
	CmdUserField:      {models.RoleAdmin, (*Router).handleUserField},
	CmdUserRole:       {models.RoleAdmin, (*Router).handleUserRole},
	CmdUserDeleteList: {models.RoleAdmin, (*Router).handleUserDeleteList},
	CmdUserDeleteAsk:  {models.RoleAdmin, (*Router).handleUserDeleteAsk},
	CmdUserDelete:     {models.RoleAdmin, (*Router).handleUserDelete},
	CmdIO:             {models.RoleAdmin, (*Router).handleIO},
	CmdExport:         {models.RoleAdmin, (*Router).handleExport},
	CmdImport:         {models.RoleAdmin, (*Router).handleImport},
	CmdPhotoManage:    {models.RoleAdmin, (*Router).handlePhotoManage},
	CmdPhotoAdd:       {models.RoleAdmin, (*Router).handlePhotoAdd},
	CmdPhotoList:      {models.RoleAdmin, (*Router).handlePhotoList},
	CmdPhotoReplace:   {models.RoleAdmin, (*Router).handlePhotoReplace},
	CmdPhotoDelete:    {models.RoleAdmin, (*Router).handlePhotoDelete},
}

// Handle processes one inbound event. Free text, media and documents belong
// to the sender's active conversation; without one they fall back to the
// main menu, like any unknown command.
func (r *Router) Handle(ev Event) []Action {
	switch ev.Kind {
	case EventCommand:
		return r.handleCommand(ev)
	case EventText:
		return r.submitToFlow(ev, conversation.Input{Text: ev.Text})
	case EventMedia:
		return r.submitToFlow(ev, conversation.Input{FileID: ev.FileID, Caption: ev.Caption})
	case EventDocument:
		return r.submitToFlow(ev, conversation.Input{Text: string(ev.FileData)})
	}
	return r.mainMenuActions(ev.Sender)
}

func (r *Router) handleCommand(ev Event) []Action {
	rt, ok := routes[ev.Command]
	if !ok {
		return r.mainMenuActions(ev.Sender)
	}
	if r.RoleOf(ev.Sender) < rt.minRole {
		return []Action{textAction(ev.Sender, deniedText, nil)}
	}
	return rt.handle(r, ev)
}

func (r *Router) submitToFlow(ev Event, in conversation.Input) []Action {
	flowName, ok := r.engine.Active(ev.Sender)
	if !ok {
		return r.mainMenuActions(ev.Sender)
	}
	// A declined confirmation step means the whole dialog is off, whether
	// the "no" arrives as a button press or typed text.
	if step, ok := r.engine.Current(ev.Sender); ok && step.Field == "confirm" && declinedConfirm(in) {
		r.engine.Cancel(ev.Sender)
		return r.cancelledActions(ev.Sender, flowName)
	}
	res, err := r.engine.Submit(ev.Sender, in)
	if err != nil {
		if errors.Is(err, conversation.ErrNoSession) {
			return r.mainMenuActions(ev.Sender)
		}
		return r.flowFailureActions(ev.Sender, flowName, err)
	}
	return r.renderStep(ev.Sender, flowName, res)
}

func declinedConfirm(in conversation.Input) bool {
	if in.Choice != "" {
		return in.Choice == "no"
	}
	return strings.TrimSpace(in.Text) == "no"
}

// startFlow opens a session and prompts the first step.
func (r *Router) startFlow(target int64, flow *conversation.Flow) []Action {
	res := r.engine.Start(flow, target)
	return r.renderStep(target, flow.Name, res)
}

// renderStep turns a conversation transition into outbound actions.
func (r *Router) renderStep(target int64, flowName string, res conversation.StepResult) []Action {
	switch res.Status {
	case conversation.StatusPrompt:
		return []Action{textAction(target, res.Prompt, stepKeyboard(res.Step))}
	case conversation.StatusRetry:
		text := res.Hint
		if text == "" {
			text = res.Prompt
		}
		return []Action{textAction(target, text, stepKeyboard(res.Step))}
	case conversation.StatusCancelled:
		return r.cancelledActions(target, flowName)
	case conversation.StatusDone:
		return r.doneActions(target, flowName, res.Record)
	}
	return nil
}

// flowFailureActions reports a store failure without dropping the session:
// the collected answers survive and the user may simply answer again.
func (r *Router) flowFailureActions(target int64, flowName string, err error) []Action {
	utils.ErrorLogger.Errorf("flow %s for %d: %v", flowName, target, err)
	return []Action{textAction(target, "⚠️ Не получилось сохранить: "+err.Error()+"\nПопробуйте ещё раз.", nil)}
}

func (r *Router) cancelledActions(target int64, flowName string) []Action {
	text := "❌ Действие отменено."
	if flowName == flowBooking {
		text = "❌ Бронирование отменено. Возвращаемся в главное меню."
	}
	return []Action{textAction(target, text, r.mainMenuKeyboard(r.RoleOf(target)))}
}

// doneActions is the per-flow completion answer, plus side notifications.
func (r *Router) doneActions(target int64, flowName string, rec conversation.Record) []Action {
	switch flowName {
	case flowBooking:
		actions := []Action{textAction(target,
			"Спасибо! Ваша заявка на бронь принята. Мы свяжемся с вами при необходимости 💐",
			backMainKeyboard())}
		id, _ := rec["booking_id"].(uint)
		note := fmt.Sprintf(
			"Новая бронь #%d!\n👤 %s\n📞 %s\n📅 %s\n📌 %s\n📝 %s",
			id, recText(rec, "fullname"), recText(rec, "phone"),
			recText(rec, "datetime"), recText(rec, "source"), recText(rec, "notes"))
		for _, admin := range r.AdminTargets() {
			actions = append(actions, textAction(admin, note, nil))
		}
		return actions
	case flowStaffCreate:
		return []Action{textAction(target, "✅ Сотрудник создан/обновлён.", usersMenuKeyboard())}
	case flowMenuAdd:
		return []Action{textAction(target, "✅ Позиция добавлена.", backKeyboard(CmdMenuManage, ""))}
	case flowKitchenAdd:
		kind := models.ListKind(recText(rec, "list"))
		return []Action{textAction(target, "✅ Добавлено.", r.kitchenListKeyboard(kind))}
	case flowUserEdit:
		return []Action{textAction(target, "✅ Изменения сохранены.", usersMenuKeyboard())}
	case flowMenuEdit:
		return []Action{textAction(target, "✅ Изменения сохранены.", menuManageKeyboard())}
	case flowPhotoAdd:
		return []Action{textAction(target, "✅ Фото добавлено.", adminMenuKeyboard())}
	case flowPhotoReplace:
		return []Action{textAction(target, "✅ Фото заменено.", adminMenuKeyboard())}
	case flowImport:
		return []Action{textAction(target, "✅ Импорт завершён: "+recText(rec, "summary")+".", ioMenuKeyboard())}
	}
	return r.mainMenuActions(target)
}

func (r *Router) mainMenuActions(target int64) []Action {
	return []Action{textAction(target, "🏠 Главное меню:", r.mainMenuKeyboard(r.RoleOf(target)))}
}
