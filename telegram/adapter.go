package telegram

import (
	"io"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/verateam/vera-bot/bot"
	"github.com/verateam/vera-bot/utils"
)

// Adapter binds the transport-agnostic core to the Telegram Bot API: it
// translates updates into events, feeds them to the router, and delivers the
// resulting actions. It also implements services.Sink for the background
// sweeps.
type Adapter struct {
	api    *tgbotapi.BotAPI
	router *bot.Router
}

func New(token string, router *bot.Router) (*Adapter, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	utils.InfoLogger.Printf("Authorized on account %s", api.Self.UserName)
	return &Adapter{api: api, router: router}, nil
}

// Run long-polls until stop is closed. One update at a time: the router is
// fast and ordering per chat matters more than throughput here.
func (a *Adapter) Run(stop <-chan struct{}) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := a.api.GetUpdatesChan(u)
	for {
		select {
		case <-stop:
			a.api.StopReceivingUpdates()
			return
		case update := <-updates:
			ev, ok := a.eventFromUpdate(update)
			if !ok {
				continue
			}
			a.Deliver(a.router.Handle(ev))
		}
	}
}

func (a *Adapter) eventFromUpdate(update tgbotapi.Update) (bot.Event, bool) {
	if cq := update.CallbackQuery; cq != nil {
		// Acknowledge the press so the client stops its spinner.
		if _, err := a.api.Request(tgbotapi.NewCallback(cq.ID, "")); err != nil {
			utils.ErrorLogger.Errorf("answer callback: %v", err)
		}
		cmd, arg := bot.ParseCommand(cq.Data)
		return bot.Event{
			Kind:           bot.EventCommand,
			Sender:         cq.From.ID,
			SenderName:     cq.From.FirstName + " " + cq.From.LastName,
			SenderUsername: cq.From.UserName,
			Command:        cmd,
			Arg:            arg,
		}, true
	}

	msg := update.Message
	if msg == nil || msg.From == nil {
		return bot.Event{}, false
	}
	ev := bot.Event{
		Sender:         msg.From.ID,
		SenderName:     msg.From.FirstName + " " + msg.From.LastName,
		SenderUsername: msg.From.UserName,
	}

	switch {
	case msg.IsCommand():
		ev.Kind = bot.EventCommand
		ev.Command, ev.Arg = bot.Command(msg.Command()), msg.CommandArguments()
	case len(msg.Photo) > 0:
		ev.Kind = bot.EventMedia
		ev.FileID = msg.Photo[len(msg.Photo)-1].FileID
		ev.Caption = msg.Caption
	case msg.Document != nil:
		ev.Kind = bot.EventDocument
		ev.FileName = msg.Document.FileName
		data, err := a.downloadFile(msg.Document.FileID)
		if err != nil {
			utils.ErrorLogger.Errorf("download document %s: %v", msg.Document.FileID, err)
		}
		ev.FileData = data
	default:
		ev.Kind = bot.EventText
		ev.Text = msg.Text
	}
	return ev, true
}

func (a *Adapter) downloadFile(fileID string) ([]byte, error) {
	url, err := a.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, err
	}
	resp, err := http.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// Deliver sends actions in order. Send failures are logged and skipped; a
// blocked guest must not take the bot down.
func (a *Adapter) Deliver(actions []bot.Action) {
	for _, action := range actions {
		var c tgbotapi.Chattable
		switch action.Kind {
		case bot.SendText:
			m := tgbotapi.NewMessage(action.Target, action.Text)
			if kb := markup(action.Keyboard); kb != nil {
				m.ReplyMarkup = kb
			}
			c = m
		case bot.SendMedia:
			m := tgbotapi.NewPhoto(action.Target, tgbotapi.FileID(action.FileID))
			m.Caption = action.Text
			if kb := markup(action.Keyboard); kb != nil {
				m.ReplyMarkup = kb
			}
			c = m
		case bot.SendDocument:
			m := tgbotapi.NewDocument(action.Target, tgbotapi.FileBytes{
				Name:  action.Filename,
				Bytes: action.Document,
			})
			m.Caption = action.Text
			c = m
		default:
			continue
		}
		if _, err := a.api.Send(c); err != nil {
			utils.ErrorLogger.Errorf("send to %d: %v", action.Target, err)
		}
	}
}

func markup(kb *bot.Keyboard) *tgbotapi.InlineKeyboardMarkup {
	if kb == nil || len(kb.Rows) == 0 {
		return nil
	}
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, r := range kb.Rows {
		var buttons []tgbotapi.InlineKeyboardButton
		for _, b := range r {
			if b.URL != "" {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL(b.Label, b.URL))
			} else {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data))
			}
		}
		rows = append(rows, buttons)
	}
	m := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &m
}
