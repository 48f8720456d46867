package ast

type (
	// Top-level node families.
	FileID uint32
	ItemID uint32
	StmtID uint32
	ExprID uint32
	// Sub-structure families.
	PatternID      uint32
	PatternEntryID uint32
	ParamID        uint32
	GenericParamID uint32
	AttrID         uint32
	ConditionID    uint32
	CatchClauseID  uint32
	SwitchCaseID   uint32
	CaptureID      uint32
	PayloadID      uint32
)

const (
	NoFileID         FileID         = 0
	NoItemID         ItemID         = 0
	NoStmtID         StmtID         = 0
	NoExprID         ExprID         = 0
	NoPatternID      PatternID      = 0
	NoPatternEntryID PatternEntryID = 0
	NoParamID        ParamID        = 0
	NoGenericParamID GenericParamID = 0
	NoAttrID         AttrID         = 0
	NoConditionID    ConditionID    = 0
	NoCatchClauseID  CatchClauseID  = 0
	NoSwitchCaseID   SwitchCaseID   = 0
	NoCaptureID      CaptureID      = 0
	NoPayloadID      PayloadID      = 0
)

func (id FileID) IsValid() bool         { return id != NoFileID }
func (id ItemID) IsValid() bool         { return id != NoItemID }
func (id StmtID) IsValid() bool         { return id != NoStmtID }
func (id ExprID) IsValid() bool         { return id != NoExprID }
func (id PatternID) IsValid() bool      { return id != NoPatternID }
func (id PatternEntryID) IsValid() bool { return id != NoPatternEntryID }
func (id ParamID) IsValid() bool        { return id != NoParamID }
func (id GenericParamID) IsValid() bool { return id != NoGenericParamID }
func (id AttrID) IsValid() bool         { return id != NoAttrID }
func (id ConditionID) IsValid() bool    { return id != NoConditionID }
func (id CatchClauseID) IsValid() bool  { return id != NoCatchClauseID }
func (id SwitchCaseID) IsValid() bool   { return id != NoSwitchCaseID }
func (id CaptureID) IsValid() bool      { return id != NoCaptureID }
