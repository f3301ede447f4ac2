// Package ui contains the Bubble Tea program that drives the path picker.
// Model focuses on message orchestration while the dialogs own navigation,
// search, and rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, window resizes).
//   - Key presses go to the active Dialog. PathDialog walks a row of panes
//     (internal/ui/navigation.go) and narrows them with an incremental search
//     (internal/ui/input.go); ListDialog picks from a flat list with a fuzzy
//     filter.
//   - A keystroke that finishes the dialog returns an Outcome. Model stores it,
//     renders an empty view and quits the program; callers read the outcome and
//     the committed path afterwards.
//
// State ownership:
//   - Pane and stack state lives in internal/ui/state, which tracks entries,
//     cursors, search views and viewport calculations.
//   - Remembered choices belong to the oracle handed to the stack, so the UI
//     never touches persistence directly.
package ui
