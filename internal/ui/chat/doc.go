// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the full-screen chat view for kbchat.

The Model is a Bubble Tea model wrapped around a session.Controller. It owns
no conversation state of its own: the transcript and the awaiting flag live
in the Controller, and the view re-renders them after every event.

# Turns

Every edit to the compose box is mirrored into the Controller's draft, and
Enter calls Controller.Begin with that draft. When Begin
accepts the text, the user message is already in the transcript, and the
webhook exchange runs as a tea.Cmd that delivers a ReplyMsg. Update hands
the ReplyMsg to Controller.Complete, which appends the reply or raises the
failure toast.

Enter is ignored while a reply is pending. The compose box stays editable.

# Keys

  - enter: send
  - alt+enter: newline
  - alt+1..alt+9: copy the Nth code block of the latest reply
  - pgup/pgdn: scroll
  - f1: show or hide the full key list in the status bar
  - ctrl+c: quit

# Config Reload

ConfigReloadedMsg is sent by the CLI when the config file changes. The model
swaps the webhook URL and the syntax palette and confirms with a toast.
*/
package chat
