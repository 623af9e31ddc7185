package protocol

// TxSelectMethod represents the tx.select method
type TxSelectMethod struct{}

func (m *TxSelectMethod) ClassID() uint16  { return ClassTx }
func (m *TxSelectMethod) MethodID() uint16 { return TxSelect }

func (m *TxSelectMethod) txMethod() {}

func (m *TxSelectMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *TxSelectMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *TxSelectMethod) write(e *encoder) {}
func (m *TxSelectMethod) read(d *decoder)  {}

// TxSelectOKMethod represents the tx.select-ok method
type TxSelectOKMethod struct{}

func (m *TxSelectOKMethod) ClassID() uint16  { return ClassTx }
func (m *TxSelectOKMethod) MethodID() uint16 { return TxSelectOK }

func (m *TxSelectOKMethod) txMethod() {}

func (m *TxSelectOKMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *TxSelectOKMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *TxSelectOKMethod) write(e *encoder) {}
func (m *TxSelectOKMethod) read(d *decoder)  {}

// TxCommitMethod represents the tx.commit method
type TxCommitMethod struct{}

func (m *TxCommitMethod) ClassID() uint16  { return ClassTx }
func (m *TxCommitMethod) MethodID() uint16 { return TxCommit }

func (m *TxCommitMethod) txMethod() {}

func (m *TxCommitMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *TxCommitMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *TxCommitMethod) write(e *encoder) {}
func (m *TxCommitMethod) read(d *decoder)  {}

// TxCommitOKMethod represents the tx.commit-ok method
type TxCommitOKMethod struct{}

func (m *TxCommitOKMethod) ClassID() uint16  { return ClassTx }
func (m *TxCommitOKMethod) MethodID() uint16 { return TxCommitOK }

func (m *TxCommitOKMethod) txMethod() {}

func (m *TxCommitOKMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *TxCommitOKMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *TxCommitOKMethod) write(e *encoder) {}
func (m *TxCommitOKMethod) read(d *decoder)  {}

// TxRollbackMethod represents the tx.rollback method
type TxRollbackMethod struct{}

func (m *TxRollbackMethod) ClassID() uint16  { return ClassTx }
func (m *TxRollbackMethod) MethodID() uint16 { return TxRollback }

func (m *TxRollbackMethod) txMethod() {}

func (m *TxRollbackMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *TxRollbackMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *TxRollbackMethod) write(e *encoder) {}
func (m *TxRollbackMethod) read(d *decoder)  {}

// TxRollbackOKMethod represents the tx.rollback-ok method
type TxRollbackOKMethod struct{}

func (m *TxRollbackOKMethod) ClassID() uint16  { return ClassTx }
func (m *TxRollbackOKMethod) MethodID() uint16 { return TxRollbackOK }

func (m *TxRollbackOKMethod) txMethod() {}

func (m *TxRollbackOKMethod) Serialize() ([]byte, error)    { return serializeArgs(m) }
func (m *TxRollbackOKMethod) Deserialize(data []byte) error { return deserializeArgs(m, data) }

func (m *TxRollbackOKMethod) write(e *encoder) {}
func (m *TxRollbackOKMethod) read(d *decoder)  {}
