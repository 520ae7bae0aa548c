/*
Package session implements remote presenter sessions.

A session is a deck position plus the walkthrough state of the visible slide, persisted
as a domain.Snapshot. Every command restores a fresh deck controller from the snapshot,
applies the command and captures the result, all while holding the session lock. Timers
never run between commands: a restored session is inert until the next command.
*/
package session
