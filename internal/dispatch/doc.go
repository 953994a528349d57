// Package dispatch drains a queue of commands into detached background
// processes while keeping the number of running instances under a ceiling.
//
// For each queued command, in enqueue order, the dispatcher asks a
// SlotChecker whether another instance may start. The check re-counts the
// running instances from the process table and reaps stale ones as a side
// effect. When no slot is free it waits poll_interval and asks again.
//
// Key behaviors:
//   - Strict FIFO: a command never starts before one queued ahead of it
//   - One caller-side loop, no internal parallelism
//   - Launched processes are detached and never waited on for status
//   - Output of every launched process is appended to output_sink
//
// Poll limit:
//   - The poll counter is per command and starts at zero for each command
//   - Once it exceeds poll_limit the current command is dropped and Execute
//     returns; commands queued behind it stay queued for a later Execute
//
// Error handling:
//   - A failed launch is logged and the command is still removed
//   - Nothing in Execute returns an error; outcomes are visible in the log
package dispatch
