package types

const (
	EventTypeBonded               = "bonded"
	EventTypeHarvested            = "harvested"
	EventTypeReceived             = "received"
	EventTypeUnbondQueued         = "unbond_queued"
	EventTypeUnbondSubmitted      = "unbond_submitted"
	EventTypeReconciled           = "reconciled"
	EventTypeUnbondedWithdrawn    = "unbonded_withdrawn"
	EventTypeRebalanced           = "rebalanced"
	EventTypeValidatorAdded       = "validator_added"
	EventTypeValidatorRemoved     = "validator_removed"
	EventTypeOwnershipProposed    = "ownership_proposed"
	EventTypeOwnershipDropped     = "ownership_proposal_dropped"
	EventTypeOwnershipTransferred = "ownership_transferred"
	EventTypeConfigUpdated        = "config_updated"
	EventTypeInstantiated         = "instantiated"

	AttributeKeyAction          = "action"
	AttributeKeyReceiver        = "receiver"
	AttributeKeyUser            = "user"
	AttributeKeyValidator       = "validator"
	AttributeKeyID              = "id"
	AttributeKeyIDs             = "ids"
	AttributeKeyTokenBonded     = "utoken_bonded"
	AttributeKeyStakeMinted     = "ustake_minted"
	AttributeKeyStakeBurned     = "ustake_burned"
	AttributeKeyStakeToBurn     = "ustake_to_burn"
	AttributeKeyTokenUnbonded   = "utoken_unbonded"
	AttributeKeyTokenDeducted   = "utoken_deducted"
	AttributeKeyTokenRefunded   = "utoken_refunded"
	AttributeKeyTokenMoved      = "utoken_moved"
	AttributeKeyProtocolFee     = "utoken_protocol_fee"
	AttributeKeyReceivedCoin    = "received_coin"
	AttributeKeyStartTime       = "est_unbond_start_time"
	AttributeKeyNewOwner        = "new_owner"
	AttributeKeyPreviousOwner   = "previous_owner"
	AttributeKeyStakeDenom      = "stake_denom"
	AttributeValueImmediateTime = "immediate"
)
