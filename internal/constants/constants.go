package constants

// Submission statuses. Pending is reserved in the schema; no current flow
// produces it.
const (
	SubmissionStatusApproved = "approved"
	SubmissionStatusRejected = "rejected"
	SubmissionStatusPending  = "pending"
)

// Rejection reasons persisted on ledger rows. Stored as fixed strings;
// response messages are localized separately.
const (
	RejectionVulgarArtist  = "vulgar language in artist name"
	RejectionVulgarTitle   = "vulgar language in title"
	RejectionTrackNotFound = "track not found"
	RejectionExplicit      = "explicit content"
)

// Queue names.
const (
	QueueDefault = "default"
)

// Async task types.
const (
	TaskVerifyCodeEmail = "email:verify_code"
)

// Captcha scenes.
const (
	CaptchaSceneRequestCode = "request_code"
)
