package bot

// Command is the closed set of inbound command identifiers. Callback data
// on the wire is "cmd" or "cmd:arg"; anything that does not parse into this
// set falls back to the main menu.
type Command string

const (
	CmdStart    Command = "start"
	CmdMainMenu Command = "main"

	// Guest surface.
	CmdBook             Command = "book"
	CmdMenuBrowse       Command = "menu"
	CmdMenuInside       Command = "menu_inside"
	CmdMenuCategory     Command = "menu_cat"
	CmdPhotos           Command = "photos"
	CmdFeedback         Command = "feedback"
	CmdFeedbackContacts Command = "feedback_contacts"

	// Generic flow navigation, shared by every conversation.
	CmdFlowBack   Command = "fl_back"
	CmdFlowCancel Command = "fl_cancel"
	CmdFlowSkip   Command = "fl_skip"
	CmdFlowOption Command = "fl_opt"

	// Booking reminder follow-ups.
	CmdBookingConfirm Command = "book_confirm"
	CmdBookingCancel  Command = "book_cancel"

	// Staff surface.
	CmdStaffMenu     Command = "staff_menu"
	CmdBookings      Command = "bookings"
	CmdKitchen       Command = "kitchen"
	CmdKitchenList   Command = "kitchen_list"
	CmdKitchenAdd    Command = "kitchen_add"
	CmdKitchenDelete Command = "kitchen_del"
	CmdMenuManage    Command = "menu_manage"
	CmdMenuAdd       Command = "menu_add"
	CmdMenuList      Command = "menu_list"
	CmdMenuEdit      Command = "menu_edit"
	CmdMenuField     Command = "menu_field"
	CmdMenuDelete    Command = "menu_del"

	// Admin surface.
	CmdAdminMenu      Command = "admin"
	CmdUsers          Command = "users"
	CmdUserCreate     Command = "user_create"
	CmdUserEditList   Command = "user_edit_list"
	CmdUserEdit       Command = "user_edit"
	CmdUserField      Command = "user_field"
	CmdUserRole       Command = "user_role"
	CmdUserDeleteList Command = "user_del_list"
	CmdUserDeleteAsk  Command = "user_del_ask"
	CmdUserDelete     Command = "user_del"
	CmdIO             Command = "io"
	CmdExport         Command = "io_export"
	CmdImport         Command = "io_import"
	CmdPhotoManage    Command = "photo_manage"
	CmdPhotoAdd       Command = "photo_add"
	CmdPhotoList      Command = "photo_list"
	CmdPhotoReplace   Command = "photo_replace"
	CmdPhotoDelete    Command = "photo_del"
)

type EventKind int

const (
	EventCommand EventKind = iota
	EventText
	EventMedia
	EventDocument
)

// Event is one inbound update from the transport: a command (slash command or
// button press), free text, a photo, or an uploaded document.
type Event struct {
	Kind   EventKind
	Sender int64
	// SenderName/SenderUsername come from the platform profile and seed the
	// users row on first contact.
	SenderName     string
	SenderUsername string

	Command Command
	Arg     string

	Text     string
	FileID   string
	Caption  string
	FileData []byte
	FileName string
}

// ParseCommand splits wire callback data into the command and its argument.
func ParseCommand(data string) (Command, string) {
	for i := 0; i < len(data); i++ {
		if data[i] == ':' {
			return Command(data[:i]), data[i+1:]
		}
	}
	return Command(data), ""
}

// CallbackData renders a command and argument back into wire form.
func CallbackData(cmd Command, arg string) string {
	if arg == "" {
		return string(cmd)
	}
	return string(cmd) + ":" + arg
}
