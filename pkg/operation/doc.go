/*
Package operation implements the per-file rename pipeline and the batch
state machine that drives it.

	+--------------+     +-------------+     +-------------+     +--------------+
	|  FileRecord  | --> | Transformer | --> |  Validator  | --> | Materializer |
	| (split path) |     | (text pkg)  |     | (validate)  |     | (copy/move)  |
	+--------------+     +-------------+     +-------------+     +--------------+
	        ^                                                           |
	        |                 +--------------+                          |
	        +---------------- | Orchestrator | <------------------------+
	                          |  (events)    |
	                          +--------------+

🎯 Purpose:
- Runs files one at a time, in the order they were selected
- Turns every per-file failure into a skip or an abort, never a returned error
- Streams log, progress and terminal events to whoever renders them

🔄 States:

	Idle --Start--> Running --+--> Finished
	                          +--> Aborted    (output directory missing or gone, panic)
	                          +--> Cancelled  (Cancel or context done)

Selection and progress are cleared whenever a batch leaves Running.

🛑 Cancellation:
The context is checked before the transformer, before the validator and
before the materializer. A copy in flight stops reading and removes its
temporary file, so a destination is either complete or absent.

🔍 Example:

	cfg, err := config.New(config.Options{Search: "x", Replace: "y"})
	if err != nil {
		return err
	}
	for ev := range operation.Run(ctx, []string{"/a/x.txt"}, cfg) {
		if ev.Kind == operation.EventTerminal {
			fmt.Println(ev.State)
		}
	}
*/
package operation
