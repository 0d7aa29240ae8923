package model

// BlockGroup is the block range shape: the single reward-bearing row becomes
// the mining transaction and every other row a normal transaction.
type BlockGroup struct {
	MiningTx     map[string]any   `json:"mining_tx"`
	Transactions []map[string]any `json:"transactions"`
}

// GroupByBlock folds a height-ordered run of transaction rows and their
// per-block difficulties into a height-keyed map of block groups.
//
// Rows are walked in storage order; a block is emitted when its reward row is
// seen. Normal rows are stripped of block_hash and reward, the mining row of
// address and amount, mirroring what each kind of row carries no meaning for.
func GroupByBlock(txs []Transaction, diffs []float64) map[int64]BlockGroup {
	blocks := make(map[int64]BlockGroup)
	normals := make([]map[string]any, 0)
	diffIdx := 0

	var previous int64 = -1
	for _, tx := range txs {
		height := tx.BlockHeight
		if previous != -1 && height != previous {
			normals = normals[:0]
		}

		dict := tx.ToDict(true, true)
		delete(dict, "block_height")

		if tx.Reward == 0 {
			delete(dict, "block_hash")
			delete(dict, "reward")
			normals = append(normals, dict)
		} else {
			delete(dict, "address")
			delete(dict, "amount")
			if diffIdx < len(diffs) {
				dict["difficulty"] = diffs[diffIdx]
				diffIdx++
			}
			group := BlockGroup{
				MiningTx:     dict,
				Transactions: append([]map[string]any(nil), normals...),
			}
			blocks[height] = group
		}

		previous = height
	}

	return blocks
}

// BlocksDict shapes point-lookup rows as the height-keyed wrapper frozen for
// existing consumers: each value is a block record holding its height, hash
// and the full transaction list.
func BlocksDict(txs []Transaction) map[int64]map[string]any {
	blocks := make(map[int64]map[string]any)
	for _, tx := range txs {
		block, ok := blocks[tx.BlockHeight]
		if !ok {
			block = map[string]any{
				"block_height": tx.BlockHeight,
				"block_hash":   tx.BlockHash,
				"transactions": []map[string]any{},
			}
			blocks[tx.BlockHeight] = block
		}
		block["transactions"] = append(block["transactions"].([]map[string]any), tx.ToDict(true, true))
	}
	return blocks
}
