package main

// InputHandler dispatches keyboard and mouse input to actions once per frame
type InputHandler struct {
	inputActions        InputActions
	inputState          InputState
	keybindingManager   *KeybindingManager
	mousebindingManager *MousebindingManager
}

// NewInputHandler creates a new InputHandler
func NewInputHandler(inputActions InputActions, inputState InputState,
	keybindingManager *KeybindingManager, mousebindingManager *MousebindingManager) *InputHandler {
	return &InputHandler{
		inputActions:        inputActions,
		inputState:          inputState,
		keybindingManager:   keybindingManager,
		mousebindingManager: mousebindingManager,
	}
}

// HandleInput processes all input for the current frame.
// Returns true if any input was processed, false otherwise.
func (h *InputHandler) HandleInput() bool {
	if h.inputActions.GetTotalImageCount() == 0 {
		// Still allow quitting an empty session
		return h.dispatch("exit")
	}

	inputProcessed := false

	inputProcessed = h.dispatch("exit") || inputProcessed
	inputProcessed = h.dispatch("help") || inputProcessed
	inputProcessed = h.dispatch("info") || inputProcessed
	inputProcessed = h.dispatch("next") || inputProcessed
	inputProcessed = h.dispatch("previous") || inputProcessed
	inputProcessed = h.dispatch("jump_first") || inputProcessed
	inputProcessed = h.dispatch("jump_last") || inputProcessed
	inputProcessed = h.dispatch("toggle_random") || inputProcessed
	inputProcessed = h.dispatch("toggle_auto") || inputProcessed
	inputProcessed = h.dispatch("faster") || inputProcessed
	inputProcessed = h.dispatch("slower") || inputProcessed
	inputProcessed = h.dispatch("cycle_sort") || inputProcessed
	inputProcessed = h.dispatch("fullscreen") || inputProcessed

	return inputProcessed
}

// dispatch fires the action if either a key or a mouse binding triggered it
func (h *InputHandler) dispatch(action string) bool {
	if h.keybindingManager.ExecuteAction(action, h.inputActions, h.inputState) {
		return true
	}
	return h.mousebindingManager.ExecuteAction(action, h.inputActions, h.inputState)
}
