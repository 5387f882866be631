// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package gc provides memory-efficient buffer pooling built on
// [github.com/valyala/bytebufferpool]. The bundling and verification paths
// reuse pooled buffers when concatenating PEM material and staging tar
// archive members, which keeps garbage collection overhead low during batch
// client issuance.
package gc
