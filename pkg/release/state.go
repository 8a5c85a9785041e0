package release

// State of the release state machine
type State uint8

// Release states
const (
	StateUnknown State = iota
	StateCheckPreconditions
	StateSelectAction
	StateMakeRelease
	StateRegenerate
	StateUpdateMetadataFiles
	StateCommitTagPush
	StateBuildPackage
	StateDone
)

func (s State) String() string {
	switch s {
	case StateCheckPreconditions:
		return "CHECK_PRECONDITIONS"
	case StateSelectAction:
		return "SELECT_ACTION"
	case StateMakeRelease:
		return "MAKE_RELEASE"
	case StateRegenerate:
		return "REGENERATE"
	case StateUpdateMetadataFiles:
		return "UPDATE_METADATA_FILES"
	case StateCommitTagPush:
		return "COMMIT_TAG_PUSH"
	case StateBuildPackage:
		return "BUILD_PACKAGE"
	case StateDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}
