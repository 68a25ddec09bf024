// Package ui contains the Bubble Tea program that hosts the popup stack.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Each tea.Msg is
//     routed through a typed handler registry so key presses, mouse events and
//     resizes are handled by focused functions.
//   - Handlers act as popup producers (opening dialogs, stack panels, sticky
//     popovers and notifications through the Hub) and as the host environment
//     (mouse presses are hit-tested against the Container and handed to
//     Manager.MouseDown, resizes become ResizeOuter signals).
//   - After every message the model drains the popup loop, so all popup
//     mutations run on the Bubble Tea goroutine. Timers and future resolvers
//     post to the loop from other goroutines; a tea.Cmd waiting on the loop's
//     wake channel turns those posts into messages.
//
// Rendering composites the Container's mounted overlays over a static page
// and appends a message line and the key help.
package ui
