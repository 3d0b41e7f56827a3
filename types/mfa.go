package types

// ChallengeKind discriminates the three MFA challenge shapes the server can
// issue before a login completes.
type ChallengeKind int

const (
	// ChallengeQuestions is an ordered list of security questions, each
	// answered with free text.
	ChallengeQuestions ChallengeKind = iota
	// ChallengeDeviceList asks the user to pick one of several masked
	// devices to receive a confirmation code.
	ChallengeDeviceList
	// ChallengeDeviceConfirm means a code was sent to a chosen device and
	// must be submitted back.
	ChallengeDeviceConfirm
)

func (k ChallengeKind) String() string {
	switch k {
	case ChallengeQuestions:
		return "questions"
	case ChallengeDeviceList:
		return "list"
	case ChallengeDeviceConfirm:
		return "device"
	}
	return "unknown"
}

// Question is one security question awaiting a text answer.
type Question struct {
	Question string `json:"question"`
}

// Device is one masked destination the user can have a code sent to.
type Device struct {
	Mask string `json:"mask"`
	Type string `json:"type,omitempty"`
}

// Challenge is one outstanding MFA step. Exactly the fields matching Kind
// are populated.
type Challenge struct {
	Kind      ChallengeKind
	Questions []Question // ChallengeQuestions
	Devices   []Device   // ChallengeDeviceList
	Message   string     // ChallengeDeviceConfirm
}
