package bot

import botinternal "pinoymahjong/internal/bot/internal"

// DefaultTuning carries the discard-heuristic weights. Honor tiles start from
// a lower base because they only ever contribute to pungs; everything else
// biases the bot toward keeping connected, live tiles.
var DefaultTuning = botinternal.Weights{
	HonorBase:  10,
	SuitedBase: 20,

	KongPartners: 50,
	PairPartner:  25,

	SeqComplete: 30,
	SeqPartial:  15,
	SeqGap:      10,

	TerminalPenalty: 5,
	MiddleBonus:     5,

	SeenDiscount: 5,
	MiddleDanger: 10,
	HonorSafety:  5,

	CloseBase:          50,
	BreakTripletSpike:  150,
	BreakPairSpike:     75,
	PairStrategySpike:  100,
	IsolatedRelief:     20,
	CloseSeqMultiplier: 2,
}

// ConservativeThreshold is the shortfall at which the bot stops feeding the
// table and protects its near-complete groups.
const ConservativeThreshold = 2
