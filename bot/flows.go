package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/verateam/vera-bot/conversation"
	"github.com/verateam/vera-bot/csvio"
	"github.com/verateam/vera-bot/models"
)

// Flow names. Field edits and other parameterized flows are built per
// invocation with the target captured in the closure, so no two targets can
// ever share a session state.
const (
	flowBooking      = "booking"
	flowStaffCreate  = "staff_create"
	flowMenuAdd      = "menu_add"
	flowKitchenAdd   = "kitchen_add"
	flowUserEdit     = "user_edit"
	flowMenuEdit     = "menu_edit"
	flowPhotoAdd     = "photo_add"
	flowPhotoReplace = "photo_replace"
	flowImport       = "import"
)

var yesNoOptions = []conversation.Option{
	{Label: "✅ Да", Value: models.ConsentYes},
	{Label: "❌ Нет", Value: models.ConsentNo},
}

var confirmOptions = []conversation.Option{
	{Label: "✔️ Подтвердить", Value: "yes"},
	{Label: "✖️ Отменить", Value: "no"},
}

func recText(rec conversation.Record, field string) string {
	v, _ := rec[field].(string)
	return v
}

func (r *Router) bookingFlow() *conversation.Flow {
	return &conversation.Flow{
		Name: flowBooking,
		Steps: []conversation.Step{
			{
				Field:    "fullname",
				Prompt:   "🌸 Представьтесь, пожалуйста: имя и фамилия — чтобы мы обращались к вам красиво:",
				Validate: conversation.NonEmptyText,
			},
			{
				Field:    "phone",
				Prompt:   "📞 Оставьте номер телефона для связи:",
				Validate: conversation.NonEmptyText,
			},
			{
				Field:    "datetime",
				Prompt:   "📅 Когда вам будет удобно прийти? (например: 28.08 15:30):",
				Validate: conversation.DateTimeText(models.DateTimeLayouts),
			},
			{
				Field:     "source",
				Prompt:    "📌 Поделитесь, как вы о нас узнали (Instagram, друзья и т.п.):",
				Skippable: true,
				Validate:  conversation.OptionalText,
			},
			{
				Field:     "notes",
				Prompt:    "📝 Особые пожелания к визиту:",
				Skippable: true,
				Validate:  conversation.OptionalText,
			},
			{
				Field:    "consent",
				Prompt:   "🪪 Согласны ли вы на обработку персональных данных?",
				Kind:     conversation.KindChoice,
				Options:  yesNoOptions,
				Validate: conversation.Choice(yesNoOptions...),
			},
		},
		Finalize: func(identity int64, rec conversation.Record) error {
			uid := identity
			booking := &models.Booking{
				UserID:   &uid,
				FullName: recText(rec, "fullname"),
				Phone:    recText(rec, "phone"),
				DateTime: recText(rec, "datetime"),
				Source:   recText(rec, "source"),
				Notes:    recText(rec, "notes"),
				Status:   models.BookingPending,
				Consent:  recText(rec, "consent"),
			}
			if err := r.store.CreateBooking(booking); err != nil {
				return err
			}
			rec["booking_id"] = booking.ID
			return nil
		},
	}
}

func (r *Router) staffCreateFlow() *conversation.Flow {
	return &conversation.Flow{
		Name: flowStaffCreate,
		Steps: []conversation.Step{
			{
				Field:    "fullname",
				Prompt:   "Введите ФИО сотрудника:",
				Validate: conversation.NonEmptyText,
			},
			{
				Field:    "phone",
				Prompt:   "Введите номер телефона сотрудника (+7...):",
				Validate: conversation.NonEmptyText,
			},
			{
				Field:    "user_id",
				Prompt:   "Введите Telegram ID сотрудника (число):",
				Validate: conversation.NumericID,
			},
			{
				Field:    "passport",
				Prompt:   "Введите паспортные данные в формате 0123 456789:",
				Validate: conversation.NonEmptyText,
			},
			{
				Field:   "confirm",
				Kind:    conversation.KindChoice,
				Options: confirmOptions,
				PromptFunc: func(rec conversation.Record) string {
					id, _ := rec["user_id"].(int64)
					return fmt.Sprintf(
						"Проверьте данные сотрудника:\n\n👤 ФИО: %s\n📞 Телефон: %s\n🆔 ID: %d\n🪪 Паспорт: %s\nРоль: Сотрудник",
						recText(rec, "fullname"), recText(rec, "phone"), id, recText(rec, "passport"))
				},
				Validate: conversation.Choice(confirmOptions...),
			},
		},
		Finalize: func(identity int64, rec conversation.Record) error {
			id, ok := rec["user_id"].(int64)
			if !ok {
				return errors.New("staff create: missing user id")
			}
			// Keep the username if the person already opened the bot once.
			username := ""
			if existing, err := r.store.GetUser(id); err == nil && existing != nil {
				username = existing.Username
			}
			_, err := r.store.UpsertUser(&models.User{
				ID:       id,
				Role:     models.RoleStaff,
				FullName: recText(rec, "fullname"),
				Phone:    recText(rec, "phone"),
				Username: username,
				Passport: recText(rec, "passport"),
			})
			return err
		},
	}
}

var menuCategoryOptions = []conversation.Option{
	{Label: "Еда", Value: "Еда"},
	{Label: "Напитки", Value: "Напитки"},
	{Label: "Десерты", Value: "Десерты"},
}

func (r *Router) menuAddFlow() *conversation.Flow {
	return &conversation.Flow{
		Name: flowMenuAdd,
		Steps: []conversation.Step{
			{
				Field:    "title",
				Prompt:   "Введите название позиции:",
				Validate: conversation.NonEmptyText,
			},
			{
				Field:     "description",
				Prompt:    "Введите описание (или '-' чтобы пропустить):",
				Skippable: true,
				Validate:  conversation.OptionalText,
			},
			{
				Field:    "price",
				Prompt:   "Введите цену (число.xx):",
				Validate: conversation.Decimal,
			},
			{
				Field:    "category",
				Prompt:   "Выберите категорию или введите свою:",
				Kind:     conversation.KindChoice,
				Options:  menuCategoryOptions,
				Validate: conversation.ChoiceOrText,
			},
			{
				Field:     "photo",
				Prompt:    "Можно отправить фото или ввести ссылку (URL), или '-' чтобы пропустить:",
				Kind:      conversation.KindMedia,
				Skippable: true,
				Validate:  conversation.MediaOrText(models.PhotoFileIDPrefix),
			},
			{
				Field:   "confirm",
				Kind:    conversation.KindChoice,
				Options: confirmOptions,
				PromptFunc: func(rec conversation.Record) string {
					price, _ := rec["price"].(float64)
					photo := recText(rec, "photo")
					if photo == "" {
						photo = "—"
					}
					return fmt.Sprintf(
						"Проверьте данные:\n\n%s\n%s\nКатегория: %s\nЦена: %.2f\nФото: %s",
						recText(rec, "title"), recText(rec, "description"),
						recText(rec, "category"), price, photo)
				},
				Validate: conversation.Choice(confirmOptions...),
			},
		},
		Finalize: func(identity int64, rec conversation.Record) error {
			price, _ := rec["price"].(float64)
			return r.store.CreateMenuItem(&models.MenuItem{
				Title:       recText(rec, "title"),
				Description: recText(rec, "description"),
				Price:       price,
				Category:    recText(rec, "category"),
				PhotoRef:    recText(rec, "photo"),
				IsActive:    true,
			})
		},
	}
}

func (r *Router) kitchenAddFlow(kind models.ListKind) *conversation.Flow {
	return &conversation.Flow{
		Name: flowKitchenAdd,
		Steps: []conversation.Step{
			{
				Field:    "title",
				Prompt:   "Введите название позиции для добавления:",
				Validate: conversation.NonEmptyText,
			},
		},
		Finalize: func(identity int64, rec conversation.Record) error {
			if err := r.store.AddKitchenEntry(kind, recText(rec, "title")); err != nil {
				return err
			}
			rec["list"] = string(kind)
			return nil
		},
	}
}

// userEditFlow edits a single user card column. Each (user, field) pair is
// its own flow instance, so parallel edits can never cross wires.
func (r *Router) userEditFlow(userID int64, field string) *conversation.Flow {
	return &conversation.Flow{
		Name: flowUserEdit,
		Steps: []conversation.Step{
			{
				Field:    "value",
				Prompt:   fmt.Sprintf("Введите новое значение для «%s» (или '-' чтобы очистить):", field),
				Validate: conversation.OptionalText,
			},
		},
		Finalize: func(identity int64, rec conversation.Record) error {
			return r.store.UpdateUserField(userID, field, recText(rec, "value"))
		},
	}
}

func (r *Router) menuEditFlow(itemID uint, field string) *conversation.Flow {
	step := conversation.Step{
		Field:    "value",
		Prompt:   fmt.Sprintf("Введите новое значение для «%s» (или '-' чтобы пусто):", field),
		Validate: conversation.OptionalText,
	}
	column := field
	switch field {
	case "price":
		step.Validate = func(in conversation.Input) (interface{}, error) {
			if strings.TrimSpace(in.Text) == "-" {
				return 0.0, nil
			}
			return conversation.Decimal(in)
		}
	case "active":
		column = "is_active"
		step.Prompt = "Введите «да» или «нет»:"
		step.Validate = conversation.ActiveFlag
	case "photo":
		column = "photo_url"
		step.Prompt = "Отправьте новое фото или URL (или '-' чтобы очистить):"
		step.Kind = conversation.KindMedia
		step.Validate = conversation.MediaOrText(models.PhotoFileIDPrefix)
	}
	return &conversation.Flow{
		Name:  flowMenuEdit,
		Steps: []conversation.Step{step},
		Finalize: func(identity int64, rec conversation.Record) error {
			return r.store.UpdateMenuItemField(itemID, column, rec["value"])
		},
	}
}

type photoUpload struct {
	FileID  string
	Caption string
}

func (r *Router) photoAddFlow() *conversation.Flow {
	return &conversation.Flow{
		Name: flowPhotoAdd,
		Steps: []conversation.Step{
			{
				Field:  "photo",
				Prompt: "Отправьте фото (как фото, не документ). Подпись можно добавить к фото.",
				Kind:   conversation.KindMedia,
				Validate: func(in conversation.Input) (interface{}, error) {
					if in.FileID == "" {
						return nil, errors.New("нужно отправить именно фото")
					}
					return photoUpload{FileID: in.FileID, Caption: in.Caption}, nil
				},
			},
		},
		Finalize: func(identity int64, rec conversation.Record) error {
			upload, ok := rec["photo"].(photoUpload)
			if !ok {
				return errors.New("photo add: missing upload")
			}
			return r.store.AddPhoto(upload.FileID, upload.Caption, identity)
		},
	}
}

func (r *Router) photoReplaceFlow(photoID uint) *conversation.Flow {
	return &conversation.Flow{
		Name: flowPhotoReplace,
		Steps: []conversation.Step{
			{
				Field:  "photo",
				Prompt: "Отправьте новое фото (как фото).",
				Kind:   conversation.KindMedia,
				Validate: func(in conversation.Input) (interface{}, error) {
					if in.FileID == "" {
						return nil, errors.New("нужно отправить именно фото")
					}
					return in.FileID, nil
				},
			},
		},
		Finalize: func(identity int64, rec conversation.Record) error {
			return r.store.ReplacePhoto(photoID, recText(rec, "photo"))
		},
	}
}

// importFlow waits for one CSV payload (document bytes or pasted text) and
// reconciles it. The summary is left in the record for the done message.
func (r *Router) importFlow(kind csvio.Kind) *conversation.Flow {
	return &conversation.Flow{
		Name: flowImport,
		Steps: []conversation.Step{
			{
				Field:  "csv",
				Prompt: "Загрузите CSV-файл (как документ) или пришлите содержимое CSV текстом.",
				Kind:   conversation.KindMedia,
				Validate: func(in conversation.Input) (interface{}, error) {
					if len(in.Text) == 0 {
						return nil, errors.New("пустой файл")
					}
					return []byte(in.Text), nil
				},
			},
		},
		Finalize: func(identity int64, rec conversation.Record) error {
			raw, _ := rec["csv"].([]byte)
			rows, err := csvio.Parse(raw)
			if err != nil {
				return err
			}
			summary, err := csvio.Reconcile(r.store, kind, rows)
			if err != nil {
				return err
			}
			rec["summary"] = summary.String()
			return nil
		},
	}
}
