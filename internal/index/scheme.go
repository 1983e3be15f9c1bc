package index

var (
	bMeta      = []byte("meta")       // slug -> metaBytes
	bBuild     = []byte("build")      // build bookkeeping
	bIdxTag    = []byte("idx_tag")    // tag slug -> sub-bucket
	bIdxAuthor = []byte("idx_author") // author slug -> sub-bucket

	bIdxUpdated = []byte("idx_updated")
	bIdxCreated = []byte("idx_created")
)

var kFingerprint = []byte("fingerprint")
