package classifications

var (
	Reclassify  = reclassify
	Summarize   = summarize
	SnapshotKey = snapshotKey
)
