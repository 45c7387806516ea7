package host

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/babylonchain/lsthub/types"
)

// Scenario is a scripted sequence of steps against an instantiated hub.
type Scenario struct {
	Steps []Step `yaml:"steps"`
}

// Step does exactly one of advance, execute, reward, slash or query.
type Step struct {
	Name        string       `yaml:"name"`
	Advance     uint64       `yaml:"advance"`
	Execute     *ExecuteStep `yaml:"execute"`
	Reward      *RewardStep  `yaml:"reward"`
	Slash       *SlashStep   `yaml:"slash"`
	Query       *QueryStep   `yaml:"query"`
	ExpectError string       `yaml:"expect-error"`
}

type ExecuteStep struct {
	Sender string                 `yaml:"sender"`
	Funds  string                 `yaml:"funds"`
	Msg    string                 `yaml:"msg"`
	Args   map[string]interface{} `yaml:"args"`
}

type RewardStep struct {
	Validator string `yaml:"validator"`
	Coins     string `yaml:"coins"`
}

type SlashStep struct {
	Validator string `yaml:"validator"`
	Fraction  string `yaml:"fraction"`
}

type QueryStep struct {
	Route string                 `yaml:"route"`
	Args  map[string]interface{} `yaml:"args"`
}

func LoadScenario(path string) (Scenario, error) {
	var s Scenario
	bz, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.UnmarshalStrict(bz, &s); err != nil {
		return s, errors.Wrapf(err, "failed to parse scenario %s", path)
	}
	return s, nil
}

func decodeAs[T any](raw []byte) (T, error) {
	var v T
	if len(raw) == 0 {
		return v, nil
	}
	err := json.Unmarshal(raw, &v)
	return v, err
}

func msgDecoder[T types.Msg]() func([]byte) (types.Msg, error) {
	return func(raw []byte) (types.Msg, error) {
		return decodeAs[T](raw)
	}
}

func queryDecoder[T types.Query]() func([]byte) (types.Query, error) {
	return func(raw []byte) (types.Query, error) {
		return decodeAs[T](raw)
	}
}

var msgDecoders = map[string]func([]byte) (types.Msg, error){
	types.MsgInstantiate{}.Type():           msgDecoder[types.MsgInstantiate](),
	types.MsgBond{}.Type():                  msgDecoder[types.MsgBond](),
	types.MsgDonate{}.Type():                msgDecoder[types.MsgDonate](),
	types.MsgQueueUnbond{}.Type():           msgDecoder[types.MsgQueueUnbond](),
	types.MsgSubmitBatch{}.Type():           msgDecoder[types.MsgSubmitBatch](),
	types.MsgReconcile{}.Type():             msgDecoder[types.MsgReconcile](),
	types.MsgWithdrawUnbonded{}.Type():      msgDecoder[types.MsgWithdrawUnbonded](),
	types.MsgHarvest{}.Type():               msgDecoder[types.MsgHarvest](),
	types.MsgRebalance{}.Type():             msgDecoder[types.MsgRebalance](),
	types.MsgAddValidator{}.Type():          msgDecoder[types.MsgAddValidator](),
	types.MsgRemoveValidator{}.Type():       msgDecoder[types.MsgRemoveValidator](),
	types.MsgTransferOwnership{}.Type():     msgDecoder[types.MsgTransferOwnership](),
	types.MsgDropOwnershipProposal{}.Type(): msgDecoder[types.MsgDropOwnershipProposal](),
	types.MsgAcceptOwnership{}.Type():       msgDecoder[types.MsgAcceptOwnership](),
	types.MsgUpdateConfig{}.Type():          msgDecoder[types.MsgUpdateConfig](),
	types.MsgClaimFunds{}.Type():            msgDecoder[types.MsgClaimFunds](),
	types.MsgSwap{}.Type():                  msgDecoder[types.MsgSwap](),
	types.MsgCheckReceivedCoin{}.Type():     msgDecoder[types.MsgCheckReceivedCoin](),
	types.MsgReinvest{}.Type():              msgDecoder[types.MsgReinvest](),
}

var queryDecoders = map[string]func([]byte) (types.Query, error){
	types.QueryConfig{}.Route():                queryDecoder[types.QueryConfig](),
	types.QueryState{}.Route():                 queryDecoder[types.QueryState](),
	types.QueryPendingBatch{}.Route():          queryDecoder[types.QueryPendingBatch](),
	types.QueryPreviousBatch{}.Route():         queryDecoder[types.QueryPreviousBatch](),
	types.QueryPreviousBatches{}.Route():       queryDecoder[types.QueryPreviousBatches](),
	types.QueryUnbondRequestsByBatch{}.Route(): queryDecoder[types.QueryUnbondRequestsByBatch](),
	types.QueryUnbondRequestsByUser{}.Route():  queryDecoder[types.QueryUnbondRequestsByUser](),
}

// DecodeMsg builds the message named name from YAML arguments.
func DecodeMsg(name string, args map[string]interface{}) (types.Msg, error) {
	decode, ok := msgDecoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown message %q", name)
	}
	raw, err := argsToJSON(args)
	if err != nil {
		return nil, err
	}
	msg, err := decode(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid arguments for %s", name)
	}
	return msg, nil
}

// DecodeQuery builds the query served at route from YAML arguments.
func DecodeQuery(route string, args map[string]interface{}) (types.Query, error) {
	decode, ok := queryDecoders[route]
	if !ok {
		return nil, fmt.Errorf("unknown query %q", route)
	}
	raw, err := argsToJSON(args)
	if err != nil {
		return nil, err
	}
	q, err := decode(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid arguments for %s", route)
	}
	return q, nil
}

func argsToJSON(args map[string]interface{}) ([]byte, error) {
	if len(args) == 0 {
		return nil, nil
	}
	return json.Marshal(jsonCompatible(args))
}

// jsonCompatible converts the map[interface{}]interface{} values yaml.v2
// produces for nested mappings.
func jsonCompatible(v interface{}) interface{} {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = jsonCompatible(val)
		}
		return m
	case map[string]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, val := range t {
			m[k] = jsonCompatible(val)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(t))
		for i, val := range t {
			s[i] = jsonCompatible(val)
		}
		return s
	default:
		return v
	}
}

// StepOutput is the JSON line written for every step.
type StepOutput struct {
	Step   int         `json:"step"`
	Name   string      `json:"name,omitempty"`
	Time   uint64      `json:"time"`
	Error  string      `json:"error,omitempty"`
	Result interface{} `json:"result,omitempty"`
}

// Run executes every step in order and writes one JSON line per step to out.
// A step failing without a matching expect-error stops the run.
func Run(e *Executor, s Scenario, out io.Writer) error {
	enc := json.NewEncoder(out)
	for i, step := range s.Steps {
		result, err := runStep(e, step)

		output := StepOutput{Step: i, Name: step.Name, Time: e.Now(), Result: result}
		switch {
		case step.ExpectError != "" && err == nil:
			return fmt.Errorf("step %d (%s): expected error %q, got none", i, step.Name, step.ExpectError)
		case step.ExpectError != "" && !strings.Contains(err.Error(), step.ExpectError):
			return fmt.Errorf("step %d (%s): expected error %q, got %w", i, step.Name, step.ExpectError, err)
		case step.ExpectError == "" && err != nil:
			return fmt.Errorf("step %d (%s): %w", i, step.Name, err)
		case err != nil:
			output.Error = err.Error()
			output.Result = nil
		}

		if err := enc.Encode(output); err != nil {
			return err
		}
	}
	return nil
}

func runStep(e *Executor, step Step) (interface{}, error) {
	if step.Advance > 0 {
		e.Advance(step.Advance)
	}

	switch {
	case step.Execute != nil:
		funds, err := sdk.ParseCoinsNormalized(step.Execute.Funds)
		if err != nil {
			return nil, errors.Wrap(err, "invalid funds")
		}
		msg, err := DecodeMsg(step.Execute.Msg, step.Execute.Args)
		if err != nil {
			return nil, err
		}
		return e.Execute(step.Execute.Sender, funds, msg)
	case step.Reward != nil:
		coins, err := sdk.ParseCoinsNormalized(step.Reward.Coins)
		if err != nil {
			return nil, errors.Wrap(err, "invalid reward")
		}
		return nil, e.Reward(step.Reward.Validator, coins)
	case step.Slash != nil:
		fraction, err := sdkmath.LegacyNewDecFromStr(step.Slash.Fraction)
		if err != nil {
			return nil, errors.Wrap(err, "invalid slash fraction")
		}
		return nil, e.Slash(step.Slash.Validator, fraction)
	case step.Query != nil:
		q, err := DecodeQuery(step.Query.Route, step.Query.Args)
		if err != nil {
			return nil, err
		}
		return e.Query(q)
	default:
		return nil, nil
	}
}
