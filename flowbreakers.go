package main

// ControlFlow is the signal every statement execution threads back to its
// caller. break, continue and return are ordinary return values here, never
// panics: each statement handler either consumes the signal (loops consume
// break/continue, calls consume return) or passes it upward untouched.
type ControlFlow struct {
	kind        flowKind
	returnValue any // payload for flowReturn only
}

type flowKind byte

const (
	flowNormal flowKind = iota
	flowBreak
	flowContinue
	flowReturn
)

func normalFlow() ControlFlow {
	return ControlFlow{kind: flowNormal}
}

func breakFlow() ControlFlow {
	return ControlFlow{kind: flowBreak}
}

func continueFlow() ControlFlow {
	return ControlFlow{kind: flowContinue}
}

func returnFlow(value any) ControlFlow {
	return ControlFlow{kind: flowReturn, returnValue: value}
}
