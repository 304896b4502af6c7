/*
Package status tracks batch progress and formats per-file outcomes.

	            +-------------+
	            |   Tracker   |
	            | (Progress)  |
	            +------+------+
	                   |
	            +------+------+
	            |  Formatter  |
	            |  (Messages) |
	            +-------------+

🎯 Purpose:
- Counts processed files against the batch total
- Turns file outcomes (moved, copied, skipped, failed) into short messages
- Resets cleanly between runs

🔄 Flow:
1. StartOperation with the number of selected files
2. UpdateProgress once per processed file, whatever its outcome
3. FinishOperation when the batch leaves the running state
4. Reset before the next batch

🔍 Example:

	tracker := status.NewTracker(nil)
	tracker.StartOperation(ctx, len(files))
	for range files {
		done, total := tracker.UpdateProgress(ctx)
		fmt.Println(done, total)
	}
	tracker.FinishOperation(ctx)
	tracker.Reset()
*/
package status
