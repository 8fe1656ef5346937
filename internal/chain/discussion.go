// Package chain describes calls to the DiscussionStorage contract. It builds
// call descriptions and calldata only; submitting transactions is left to the
// client wallet.
package chain

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

//go:embed discussion_storage.abi.json
var discussionStorageABI string

const (
	DefaultAddress = "0xc613d6564baeac4abf110ecad84ac59016233c6e"
	BaseSepolia    = int64(84532)

	archivedContent = "Thread archived on-chain"
)

// Call is everything a wallet needs to send a contract call.
type Call struct {
	Address      string        `json:"address"`
	FunctionName string        `json:"function_name"`
	Args         []interface{} `json:"args"`
	ChainID      int64         `json:"chain_id"`
	Data         string        `json:"data"`
}

type DiscussionStorage struct {
	address common.Address
	chainID int64
	abi     abi.ABI
}

func NewDiscussionStorage(address string, chainID int64) (*DiscussionStorage, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("chain: invalid contract address %q", address)
	}
	parsed, err := abi.JSON(strings.NewReader(discussionStorageABI))
	if err != nil {
		return nil, fmt.Errorf("chain: parse abi: %w", err)
	}
	return &DiscussionStorage{
		address: common.HexToAddress(address),
		chainID: chainID,
		abi:     parsed,
	}, nil
}

// Address is the lowercase hex address of the contract.
func (d *DiscussionStorage) Address() string {
	return strings.ToLower(d.address.Hex())
}

func (d *DiscussionStorage) ChainID() int64 {
	return d.chainID
}

// ABI returns the raw ABI JSON.
func (d *DiscussionStorage) ABI() json.RawMessage {
	return json.RawMessage(discussionStorageABI)
}

func (d *DiscussionStorage) call(method string, args ...interface{}) (Call, error) {
	data, err := d.abi.Pack(method, args...)
	if err != nil {
		return Call{}, fmt.Errorf("chain: pack %s: %w", method, err)
	}
	return Call{
		Address:      d.Address(),
		FunctionName: method,
		Args:         args,
		ChainID:      d.chainID,
		Data:         hexutil.Encode(data),
	}, nil
}

func (d *DiscussionStorage) CreateStorieCall(title, content, metadata string) (Call, error) {
	return d.call("createStorie", title, content, metadata)
}

func (d *DiscussionStorage) ArchiveThreadCall(storyID uint64) (Call, error) {
	return d.call("archiveThread", new(big.Int).SetUint64(storyID))
}

// CreateCommentCall uses parentID 0 for a root comment.
func (d *DiscussionStorage) CreateCommentCall(storyID, parentID uint64, content, metadata string) (Call, error) {
	return d.call("createComment", new(big.Int).SetUint64(storyID), new(big.Int).SetUint64(parentID), content, metadata)
}

func (d *DiscussionStorage) StorieCall(storyID uint64) (Call, error) {
	return d.call("Stories", new(big.Int).SetUint64(storyID))
}

func (d *DiscussionStorage) CommentCall(commentID uint64) (Call, error) {
	return d.call("comments", new(big.Int).SetUint64(commentID))
}

type archiveMetadata struct {
	OriginalStorieID string `json:"originalStorieId"`
	ArchivedBy       string `json:"archivedBy"`
	ArchivedAt       string `json:"archivedAt"`
}

// ArchivePlan is the pair of calls that puts a thread on chain: a copy of the
// story carrying archive metadata, then the archive flag.
type ArchivePlan struct {
	Store   Call `json:"store"`
	Archive Call `json:"archive"`
}

func (d *DiscussionStorage) ArchiveThreadPlan(storyID uint64, title, archivedBy string, at time.Time) (ArchivePlan, error) {
	meta, err := json.Marshal(archiveMetadata{
		OriginalStorieID: strconv.FormatUint(storyID, 10),
		ArchivedBy:       archivedBy,
		ArchivedAt:       at.UTC().Format("2006-01-02T15:04:05.000Z"),
	})
	if err != nil {
		return ArchivePlan{}, fmt.Errorf("chain: archive metadata: %w", err)
	}

	store, err := d.CreateStorieCall(title, archivedContent, string(meta))
	if err != nil {
		return ArchivePlan{}, err
	}
	archive, err := d.ArchiveThreadCall(storyID)
	if err != nil {
		return ArchivePlan{}, err
	}
	return ArchivePlan{Store: store, Archive: archive}, nil
}
