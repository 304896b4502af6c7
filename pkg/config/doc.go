/*
Package config builds the immutable per-run configuration for renamer.

	            +----------------------+
	            |  BatchConfiguration  |
	            |    (one per run)     |
	            +----------+-----------+
	                       |
	                 +-----+-----+
	                 |  Options  |
	                 | (raw input)|
	                 +-----+-----+
	                       |
	      +----------------+----------------+
	      |                |                |
	+-----+-----+    +-----+-----+    +-----+-----+
	|   YAML    |    |   JSON    |    |    HCL    |
	|  Profile  |    |  Profile  |    |  Profile  |
	+-----------+    +-----------+    +-----------+

🎯 Purpose:
- Turns raw flag or profile input into a BatchConfiguration
- Rejects input that can never be valid (non-numeric bounds, unknown case mode)
- Leaves per-name checks (bounds vs. name length) to the text package

🔄 Flow:
1. Optionally load a Profile (format picked by file extension)
2. Overlay command line flags onto Profile.Options()
3. Call New to get a BatchConfiguration that is never mutated afterwards

🔍 Example:

	cfg, err := config.New(config.Options{
		Search:  "IMG_",
		Replace: "holiday_",
		Trim:    true,
		Case:    "upper",
	})
	if err != nil {
		return err
	}
	fmt.Println(cfg)
*/
package config
