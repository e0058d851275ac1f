/*
Package session models a presentation session: the small state machine a UI
runs on top of the transition engine while a drag gesture is being settled.

A Session is either Idle or Pending(candidate). RequestMove turns an allowed
move into the pending candidate, Confirm commits it with the user's field
values, and Cancel discards it. A rejected move raises a dismissible notice
instead. The Manager keeps one Session per connected client.
*/
package session
