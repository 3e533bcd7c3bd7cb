package main

// ActionDefinition defines an action with its default key and mouse bindings
type ActionDefinition struct {
	Name         string
	Keys         []string
	MouseActions []string
	Description  string
}

var actionDefinitions = []ActionDefinition{
	{"exit", []string{"Escape", "KeyQ"}, []string{}, "Quit the slideshow"},
	{"help", []string{"Shift+Slash"}, []string{"Alt+RightClick"}, "Show/hide help"},
	{"info", []string{"KeyI"}, []string{}, "Show/hide info display"},
	{"next", []string{"ArrowRight", "KeyN"}, []string{"LeftClick", "WheelDown"}, "Next image"},
	{"previous", []string{"ArrowLeft", "KeyP"}, []string{"RightClick", "WheelUp"}, "Previous image"},
	{"jump_first", []string{"Home"}, []string{}, "Jump to first image"},
	{"jump_last", []string{"End"}, []string{}, "Jump to last image"},
	{"toggle_random", []string{"KeyR"}, []string{"MiddleClick"}, "Toggle random mode"},
	{"toggle_auto", []string{"Space"}, []string{"Shift+MiddleClick"}, "Start/stop auto-advance"},
	{"faster", []string{"Equal", "Shift+Equal"}, []string{"Ctrl+WheelUp"}, "Shorten the auto-advance interval"},
	{"slower", []string{"Minus"}, []string{"Ctrl+WheelDown"}, "Lengthen the auto-advance interval"},
	{"cycle_sort", []string{"Shift+KeyS"}, []string{"Alt+MiddleClick"}, "Cycle sort method (Natural/Simple/Entry)"},
	{"fullscreen", []string{"KeyF", "Enter"}, []string{"DoubleLeftClick"}, "Toggle fullscreen"},
}

// ActionExecutor is the single source of truth for action dispatch, shared by
// the keyboard and mouse binding managers.
type ActionExecutor struct{}

// NewActionExecutor creates a new ActionExecutor instance
func NewActionExecutor() *ActionExecutor {
	return &ActionExecutor{}
}

// ExecuteAction executes the given action using the InputActions interface.
// Returns false for unknown actions.
func (ae *ActionExecutor) ExecuteAction(action string, inputActions InputActions, inputState InputState) bool {
	switch action {
	case "exit":
		inputActions.Exit()
	case "help":
		inputActions.ToggleHelp()
	case "info":
		inputActions.ToggleInfo()
	case "next":
		inputActions.NavigateNext()
	case "previous":
		inputActions.NavigatePrevious()
	case "jump_first":
		inputActions.JumpToImage(0)
	case "jump_last":
		total := inputActions.GetTotalImageCount()
		if total > 0 {
			inputActions.JumpToImage(total - 1)
		}
	case "toggle_random":
		inputActions.ToggleRandomMode()
	case "toggle_auto":
		inputActions.ToggleAutoAdvance()
	case "faster":
		inputActions.SpeedUp()
	case "slower":
		inputActions.SlowDown()
	case "cycle_sort":
		inputActions.CycleSortMethod()
	case "fullscreen":
		inputActions.ToggleFullscreen()
	default:
		return false
	}

	return true
}

// globalActionExecutor is the shared ActionExecutor instance
var globalActionExecutor = NewActionExecutor()

// GetActionDescriptions returns a map of action names to their descriptions
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string)
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// GetDefaultKeybindings returns a map of action names to their default keybindings
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		keybindings[action.Name] = action.Keys
	}
	return keybindings
}

// GetDefaultMousebindings returns a map of action names to their default mouse bindings
func GetDefaultMousebindings() map[string][]string {
	mousebindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		mousebindings[action.Name] = action.MouseActions
	}
	return mousebindings
}
