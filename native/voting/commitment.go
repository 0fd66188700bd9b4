package voting

import "liquidgov/crypto"

// CommitmentPreimage returns sender ++ secret ++ outcome. All three parts are
// fixed width, so the concatenation carries no length prefixes. Clients must
// hash exactly these bytes when building a commitment.
func CommitmentPreimage(sender [20]byte, secret Secret, outcome VoteOutcome) []byte {
	buf := make([]byte, 0, len(sender)+len(secret)+len(outcome))
	buf = append(buf, sender[:]...)
	buf = append(buf, secret[:]...)
	buf = append(buf, outcome[:]...)
	return buf
}

// ComputeCommitment hashes the commitment preimage with hasher.
func ComputeCommitment(hasher crypto.Hasher, sender [20]byte, secret Secret, outcome VoteOutcome) [32]byte {
	return hasher.Sum(CommitmentPreimage(sender, secret, outcome))
}
