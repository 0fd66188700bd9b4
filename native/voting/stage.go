package voting

// nextStage returns the stage that follows current. Commit-reveal votes pass
// through Commit; every vote passes through Voting before Completed.
func nextStage(current VoteStage, isCommitReveal bool) (VoteStage, error) {
	switch current {
	case VoteStagePreVoting:
		if isCommitReveal {
			return VoteStageCommit, nil
		}
		return VoteStageVoting, nil
	case VoteStageCommit:
		return VoteStageVoting, nil
	case VoteStageVoting:
		return VoteStageCompleted, nil
	case VoteStageCompleted:
		return current, ErrVoteAlreadyCompleted
	default:
		return current, ErrCorruptVoteRecord
	}
}
