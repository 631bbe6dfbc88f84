// Package vectorizer 提供了基于固定词表的确定性文本向量化能力。
// 它是重量级向量模型的零依赖替代：快速、可复现，代价是语义覆盖受限于词表。
package vectorizer

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultModel 是内置词表对应的向量模型标签。
const DefaultModel = "tfidf-256"

// Vocabulary 是一份带版本标签的有序词表。
// 词条位置即向量维度：同一模型标签下的所有向量必须使用完全相同的词序，
// 否则向量不可比较。词表在进程启动时注入，之后不可变。
type Vocabulary struct {
	Model string
	Terms []string
}

// Dimension 返回该词表产出向量的维度。
func (v Vocabulary) Dimension() int {
	return len(v.Terms)
}

// LoadVocabulary 从文本文件加载词表（每行一个词条，空行与 # 注释行跳过）。
func LoadVocabulary(path, model string) (Vocabulary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("打开词表文件失败: %w", err)
	}
	defer f.Close()

	var terms []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		terms = append(terms, line)
	}
	if err := scanner.Err(); err != nil {
		return Vocabulary{}, fmt.Errorf("读取词表文件失败: %w", err)
	}
	if len(terms) == 0 {
		return Vocabulary{}, fmt.Errorf("词表文件 '%s' 为空", path)
	}
	if model == "" {
		model = DefaultModel
	}
	return Vocabulary{Model: model, Terms: terms}, nil
}

// Default 返回内置的韩英双语领域词表（模型标签 tfidf-256）。
// 词条覆盖咨询产出物语料的核心领域：数据治理、公共行政、AI、基础设施与项目管理。
func Default() Vocabulary {
	return Vocabulary{Model: DefaultModel, Terms: defaultTerms}
}

var defaultTerms = []string{
	// 韩语领域词条
	"데이터", "거버넌스", "인프라", "보안", "전략", "정책", "클라우드", "서버", "네트워크", "스토리지",
	"플랫폼", "시스템", "아키텍처", "표준", "품질", "관리", "메타데이터", "카탈로그", "마스터",
	"API", "운영", "개발", "구축", "설계", "분석", "조사", "평가", "성숙도", "모니터링", "자동화",
	"국가", "공공", "민간", "정부", "부처", "기관", "지자체", "중앙", "행정", "디지털",
	"전환", "혁신", "고도화", "통합", "연계", "개방", "활용", "촉진", "확대", "강화",
	"AI", "인공지능", "머신러닝", "딥러닝", "생성형", "LLM", "멀티모달", "RAG", "챗봇", "에이전트",
	"NLP", "자연어", "강화학습", "XAI", "연합학습", "트랜스포머", "파운데이션", "모델", "추론", "학습",
	"빅데이터", "데이터셋", "오픈데이터", "마이데이터", "데이터레이크", "파이프라인", "ETL", "수집", "가공", "정제",
	"보건", "복지", "의료", "건강", "보험", "진료", "비식별", "프라이버시", "개인정보", "동의",
	"국토", "교통", "부동산", "공간정보", "GIS", "위치", "도시", "건축", "토지", "측량",
	"환경", "대기", "수질", "기후", "탄소", "에너지", "재생", "폐기물", "생태", "녹색",
	"교육", "연구", "대학", "학술", "논문", "기술", "과학", "산업", "제조", "농업",
	"ISP", "ISMP", "EA", "ITA", "PMO", "WBS", "RFP", "BMT", "SLA", "KPI",
	"로드맵", "비전", "목표", "과제", "이행", "단계", "추진", "일정", "예산", "투자",
	"제안", "착수", "중간", "최종", "보고", "산출", "결과", "검수", "납품", "완료",
	"프로젝트", "사업", "계약", "발주", "수행", "컨설팅", "용역", "위탁", "협력", "파트너",
	// 英语词条
	"data", "governance", "infrastructure", "security", "strategy", "policy", "cloud", "server", "network", "storage",
	"platform", "system", "architecture", "standard", "quality", "management", "metadata", "catalog", "master",
	"operation", "development", "deployment", "design", "analysis", "survey", "evaluation", "maturity", "monitoring", "automation",
	"national", "public", "private", "government", "ministry", "agency", "local", "central", "administrative", "digital",
	"transformation", "innovation", "advancement", "integration", "linkage", "openness", "utilization", "promotion", "expansion", "strengthening",
	"artificial", "intelligence", "machine", "learning", "deep", "generative", "multimodal", "chatbot", "agent",
	"natural", "language", "reinforcement", "explainable", "federated", "transformer", "foundation", "model", "inference", "training",
	"bigdata", "dataset", "opendata", "mydata", "datalake", "pipeline", "collection", "processing", "cleansing",
	"health", "welfare", "medical", "insurance", "treatment", "deidentification", "privacy", "personal", "consent",
	"land", "transport", "realestate", "spatial", "location", "urban", "construction",
	"environment", "air", "water", "climate", "carbon", "energy", "renewable", "waste", "ecology", "green",
	"education", "research", "university", "academic", "paper", "technology", "science", "industry", "manufacturing", "agriculture",
	"roadmap", "vision", "goal", "task", "implementation", "phase", "schedule", "budget", "investment",
	"proposal", "kickoff", "interim", "final", "report", "deliverable", "result", "inspection", "delivery", "completion",
	"project", "contract", "procurement", "execution", "consulting", "outsourcing", "cooperation", "partner",
}
